package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lorrc/kpi-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/kpi-dashboard/internal/core/errors"
	"github.com/lorrc/kpi-dashboard/internal/core/ports"
)

// DashboardService drives one report generation: fetch all KPI tables, merge
// them on the dossier key, sort by outstanding pieces and hand the result to
// the renderer.
type DashboardService struct {
	source   ports.KPISource
	renderer ports.ReportRenderer
	logger   *slog.Logger
}

// GenerateResult summarizes a successful run.
type GenerateResult struct {
	OutputPath string
	Dossiers   int
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(source ports.KPISource, renderer ports.ReportRenderer, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		source:   source,
		renderer: renderer,
		logger:   logger,
	}
}

// Generate produces the dashboard at outputPath. It returns ErrNoData when
// every query failed or came back empty, so no file is written in that case.
func (s *DashboardService) Generate(ctx context.Context, outputPath string) (*GenerateResult, error) {
	tables, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	nonEmpty := make([]domain.Table, 0, len(tables))
	for _, t := range tables {
		if !t.Empty() {
			nonEmpty = append(nonEmpty, t)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, apperrors.ErrNoData
	}

	merged := Merge(domain.KeyColumn, nonEmpty)
	SortByCountDesc(&merged, domain.ColPiecesToProcess)

	s.logger.InfoContext(ctx, "KPI tables merged",
		"tables", len(nonEmpty),
		"dossiers", len(merged.Rows),
	)

	if err := s.renderer.WriteReport(outputPath, merged); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRenderFailed, err)
	}

	return &GenerateResult{
		OutputPath: outputPath,
		Dossiers:   len(merged.Rows),
	}, nil
}
