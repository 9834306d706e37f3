package services

import (
	"sort"

	"github.com/lorrc/kpi-dashboard/internal/core/domain"
)

// Merge full-outer-joins the given tables on key, in order. The first table
// seeds the result; every subsequent table either extends an existing row or
// appends a new one. Column order is first-seen order with the key column
// first. After joining, missing cells are filled: 0 for numeric columns,
// empty string for everything else.
//
// Merging an empty input list yields an empty table; the caller decides
// whether that is fatal.
func Merge(key string, tables []domain.Table) domain.Table {
	merged := domain.Table{Columns: []string{key}}
	if len(tables) == 0 {
		return merged
	}

	seen := map[string]bool{key: true}
	index := make(map[string]domain.Row)

	for _, t := range tables {
		for _, col := range t.Columns {
			if !seen[col] {
				seen[col] = true
				merged.Columns = append(merged.Columns, col)
			}
		}
		for _, row := range t.Rows {
			k := row.Text(key)
			dst, ok := index[k]
			if !ok {
				dst = domain.Row{key: k}
				index[k] = dst
				merged.Rows = append(merged.Rows, dst)
			}
			for col, v := range row {
				if col == key {
					continue
				}
				dst[col] = v
			}
		}
	}

	fillMissing(&merged, key)
	return merged
}

// fillMissing replaces absent cells so every row exposes every column:
// numeric columns get 0, anything else gets "".
func fillMissing(t *domain.Table, key string) {
	numeric := t.NumericColumns()
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if col == key {
				continue
			}
			if _, ok := row[col]; ok {
				continue
			}
			if numeric[col] {
				row[col] = int64(0)
			} else {
				row[col] = ""
			}
		}
	}
}

// SortByCountDesc orders rows by the given count column, highest first. Rows
// whose cell is missing or not numeric sort last. The sort is stable, so
// re-sorting an already sorted table leaves it unchanged.
func SortByCountDesc(t *domain.Table, col string) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		vi, iok := t.Rows[i][col].(int64)
		vj, jok := t.Rows[j][col].(int64)
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return vi > vj
	})
}
