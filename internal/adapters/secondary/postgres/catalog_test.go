package postgres_test

import (
	"strings"
	"testing"

	"github.com/lorrc/kpi-dashboard/internal/adapters/secondary/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := postgres.Catalog()
	require.Len(t, catalog, 6)

	t.Run("names are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, spec := range catalog {
			assert.NotEmpty(t, spec.Name)
			assert.False(t, seen[spec.Name], "duplicate query name %q", spec.Name)
			seen[spec.Name] = true
		}
	})

	t.Run("every query is a read-only dossier aggregate", func(t *testing.T) {
		for _, spec := range catalog {
			sql := strings.ToUpper(spec.SQL)
			assert.True(t, strings.HasPrefix(strings.TrimSpace(sql), "SELECT"), "%s must be a SELECT", spec.Name)
			assert.Contains(t, sql, "GROUP BY EEC.DOSSIER", "%s must group by dossier", spec.Name)
			for _, forbidden := range []string{"INSERT ", "UPDATE ", "DELETE ", "DROP ", "ALTER ", "TRUNCATE "} {
				assert.NotContains(t, sql, forbidden, "%s must stay read-only", spec.Name)
			}
		}
	})

	t.Run("suspense queries filter on the 47 account prefix", func(t *testing.T) {
		byName := make(map[string]postgres.QuerySpec)
		for _, spec := range catalog {
			byName[spec.Name] = spec
		}
		for _, name := range []string{"comptes_attente", "dates_extremes"} {
			spec, ok := byName[name]
			require.True(t, ok, "missing catalog entry %q", name)
			assert.Contains(t, spec.SQL, "code_comptable LIKE '47%'")
		}
	})

	t.Run("date extremes formats day-month-year", func(t *testing.T) {
		var found bool
		for _, spec := range catalog {
			if spec.Name == "dates_extremes" {
				found = true
				assert.Contains(t, spec.SQL, "'DD-MM-YYYY'")
				assert.Contains(t, spec.SQL, "date_min_a_traiter")
				assert.Contains(t, spec.SQL, "date_max_a_traiter")
			}
		}
		assert.True(t, found)
	})
}
