package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/kpi-dashboard/internal/core/domain"
	"github.com/lorrc/kpi-dashboard/internal/core/ports"
)

// QueryProgress is invoked after each catalog query completes, successfully
// or not. rows is 0 on failure.
type QueryProgress func(name string, rows int, err error)

// KPIRepository is the secondary adapter running the KPI catalog against
// PostgreSQL.
type KPIRepository struct {
	pool     *pgxpool.Pool
	logger   *slog.Logger
	progress QueryProgress
}

// Ensure KPIRepository implements the ports.KPISource interface.
var _ ports.KPISource = (*KPIRepository)(nil)

// NewKPIRepository creates a new KPI repository. progress may be nil.
func NewKPIRepository(pool *pgxpool.Pool, logger *slog.Logger, progress QueryProgress) *KPIRepository {
	return &KPIRepository{
		pool:     pool,
		logger:   logger,
		progress: progress,
	}
}

// FetchAll runs every catalog query serially on the shared pool. A failing
// query is logged and contributes an empty table; the remaining queries still
// run. There are no retries and no wrapping transaction.
func (r *KPIRepository) FetchAll(ctx context.Context) ([]domain.Table, error) {
	specs := Catalog()
	tables := make([]domain.Table, 0, len(specs))

	for _, spec := range specs {
		table, err := r.runQuery(ctx, spec)
		if err != nil {
			r.logger.ErrorContext(ctx, "KPI query failed",
				"query", spec.Name,
				"error", err,
			)
			table = domain.Table{}
		} else {
			r.logger.InfoContext(ctx, "KPI query completed",
				"query", spec.Name,
				"rows", len(table.Rows),
			)
		}
		if r.progress != nil {
			r.progress(spec.Name, len(table.Rows), err)
		}
		tables = append(tables, table)
	}

	return tables, nil
}

func (r *KPIRepository) runQuery(ctx context.Context, spec QuerySpec) (domain.Table, error) {
	rows, err := r.pool.Query(ctx, spec.SQL)
	if err != nil {
		return domain.Table{}, fmt.Errorf("query %s: %w", spec.Name, err)
	}
	defer rows.Close()

	table, err := scanTable(rows)
	if err != nil {
		return domain.Table{}, fmt.Errorf("query %s: %w", spec.Name, err)
	}
	return table, nil
}

// scanTable reads an arbitrary result set into a domain table. Counts come
// back as int64, dossier identifiers and formatted dates as strings. NULL
// cells are left absent so the merger can fill them consistently.
func scanTable(rows pgx.Rows) (domain.Table, error) {
	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}

	table := domain.Table{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return domain.Table{}, err
		}
		row := make(domain.Row, len(values))
		for i, v := range values {
			switch v := v.(type) {
			case nil:
				// absent; zero-/empty-filled after the merge
			case int64:
				row[columns[i]] = v
			case int32:
				row[columns[i]] = int64(v)
			case int16:
				row[columns[i]] = int64(v)
			case string:
				row[columns[i]] = v
			default:
				row[columns[i]] = fmt.Sprint(v)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, err
	}

	return table, nil
}
