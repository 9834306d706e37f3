package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/lorrc/kpi-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/kpi-dashboard/internal/core/errors"
	"github.com/lorrc/kpi-dashboard/internal/core/mocks"
	"github.com/lorrc/kpi-dashboard/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDashboardService_Generate(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()

	t.Run("success merges, sorts and renders", func(t *testing.T) {
		mockSource := mocks.NewMockKPISource()
		mockRenderer := mocks.NewMockReportRenderer()
		svc := services.NewDashboardService(mockSource, mockRenderer, logger)

		mockSource.On("FetchAll", ctx).Return([]domain.Table{
			{
				Columns: []string{"dossier", "nb_pieces_exportees"},
				Rows: []domain.Row{
					{"dossier": "A", "nb_pieces_exportees": int64(5)},
				},
			},
			{}, // a failed query contributes an empty table
			{
				Columns: []string{"dossier", "nb_pieces_a_traiter"},
				Rows: []domain.Row{
					{"dossier": "A", "nb_pieces_a_traiter": int64(60)},
					{"dossier": "B", "nb_pieces_a_traiter": int64(3)},
				},
			},
		}, nil)

		var rendered domain.Table
		mockRenderer.On("WriteReport", "out.html", mock.AnythingOfType("domain.Table")).
			Run(func(args mock.Arguments) {
				rendered = args.Get(1).(domain.Table)
			}).
			Return(nil)

		result, err := svc.Generate(ctx, "out.html")

		require.NoError(t, err)
		assert.Equal(t, "out.html", result.OutputPath)
		assert.Equal(t, 2, result.Dossiers)

		// Sorted descending by outstanding pieces: A (60) before B (3).
		require.Len(t, rendered.Rows, 2)
		assert.Equal(t, "A", rendered.Rows[0].Text("dossier"))
		assert.Equal(t, "B", rendered.Rows[1].Text("dossier"))
		assert.Equal(t, int64(0), rendered.Rows[1].Int("nb_pieces_exportees"))

		mockSource.AssertExpectations(t)
		mockRenderer.AssertExpectations(t)
	})

	t.Run("all queries empty aborts before rendering", func(t *testing.T) {
		mockSource := mocks.NewMockKPISource()
		mockRenderer := mocks.NewMockReportRenderer()
		svc := services.NewDashboardService(mockSource, mockRenderer, logger)

		mockSource.On("FetchAll", ctx).Return(make([]domain.Table, 6), nil)

		result, err := svc.Generate(ctx, "out.html")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrNoData)
		mockRenderer.AssertNotCalled(t, "WriteReport")
	})

	t.Run("source error propagates", func(t *testing.T) {
		mockSource := mocks.NewMockKPISource()
		mockRenderer := mocks.NewMockReportRenderer()
		svc := services.NewDashboardService(mockSource, mockRenderer, logger)

		sourceErr := errors.New("connection reset")
		mockSource.On("FetchAll", ctx).Return(nil, sourceErr)

		result, err := svc.Generate(ctx, "out.html")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, sourceErr)
		mockRenderer.AssertNotCalled(t, "WriteReport")
	})

	t.Run("renderer error is reported as render failure", func(t *testing.T) {
		mockSource := mocks.NewMockKPISource()
		mockRenderer := mocks.NewMockReportRenderer()
		svc := services.NewDashboardService(mockSource, mockRenderer, logger)

		mockSource.On("FetchAll", ctx).Return([]domain.Table{
			{
				Columns: []string{"dossier", "nb_pieces_a_traiter"},
				Rows:    []domain.Row{{"dossier": "A", "nb_pieces_a_traiter": int64(1)}},
			},
		}, nil)
		mockRenderer.On("WriteReport", "out.html", mock.AnythingOfType("domain.Table")).
			Return(errors.New("disk full"))

		result, err := svc.Generate(ctx, "out.html")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrRenderFailed)
	})
}
