package domain

// KeyColumn is the grouping key shared by every KPI query.
const KeyColumn = "dossier"

// Column names produced by the KPI catalog. The merged table is keyed on
// KeyColumn; everything else is either a count (int64) or a formatted date
// string.
const (
	ColExportedPieces   = "nb_pieces_exportees"
	ColExportedEntries  = "nb_ecritures_exportees"
	ColPiecesToProcess  = "nb_pieces_a_traiter"
	ColEntriesToProcess = "nb_ecritures_a_traiter"
	ColSuspenseAccounts = "nb_comptes_attente"
	ColMinDate          = "date_min_a_traiter"
	ColMaxDate          = "date_max_a_traiter"
)

// Row maps a column name to its value. Values are either int64 (counts) or
// string (dossier identifiers and formatted dates). A missing entry means the
// source query had no row for this dossier; the merger fills those in.
type Row map[string]any

// Int returns the row's value for col as a count, or 0 when the cell is
// missing or not numeric.
func (r Row) Int(col string) int64 {
	v, _ := r[col].(int64)
	return v
}

// Text returns the row's value for col as a string, or "" when the cell is
// missing or not textual.
func (r Row) Text(col string) string {
	if s, ok := r[col].(string); ok {
		return s
	}
	return ""
}

// Table is an ordered result set. Columns preserves the order in which
// columns first appeared; Rows preserves source (or sort) order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// NumericColumns returns the set of columns whose present values are all
// int64. Columns with no values at all are not numeric.
func (t Table) NumericColumns() map[string]bool {
	numeric := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		seen := false
		isNumeric := true
		for _, row := range t.Rows {
			v, ok := row[col]
			if !ok {
				continue
			}
			seen = true
			if _, isInt := v.(int64); !isInt {
				isNumeric = false
				break
			}
		}
		numeric[col] = seen && isNumeric
	}
	return numeric
}

// Totals sums every numeric column across all rows.
func (t Table) Totals() map[string]int64 {
	totals := make(map[string]int64)
	for col, ok := range t.NumericColumns() {
		if !ok {
			continue
		}
		var sum int64
		for _, row := range t.Rows {
			sum += row.Int(col)
		}
		totals[col] = sum
	}
	return totals
}
