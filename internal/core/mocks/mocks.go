package mocks

import (
	"context"

	"github.com/lorrc/kpi-dashboard/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockKPISource is a mock implementation of ports.KPISource
type MockKPISource struct {
	mock.Mock
}

func NewMockKPISource() *MockKPISource {
	return &MockKPISource{}
}

func (m *MockKPISource) FetchAll(ctx context.Context) ([]domain.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Table), args.Error(1)
}

// MockReportRenderer is a mock implementation of ports.ReportRenderer
type MockReportRenderer struct {
	mock.Mock
}

func NewMockReportRenderer() *MockReportRenderer {
	return &MockReportRenderer{}
}

func (m *MockReportRenderer) WriteReport(path string, merged domain.Table) error {
	args := m.Called(path, merged)
	return args.Error(0)
}
