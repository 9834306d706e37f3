package ports

import (
	"context"

	"github.com/lorrc/kpi-dashboard/internal/core/domain"
)

// KPISource runs the KPI query catalog against a data source.
type KPISource interface {
	// FetchAll returns one table per catalog query, in catalog order. A
	// failed query contributes an empty table rather than an error; the
	// returned error is reserved for source-level failures.
	FetchAll(ctx context.Context) ([]domain.Table, error)
}

// ReportRenderer turns the merged KPI table into a self-contained report on
// disk.
type ReportRenderer interface {
	WriteReport(path string, merged domain.Table) error
}
