package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lorrc/kpi-dashboard/internal/config"
	apperrors "github.com/lorrc/kpi-dashboard/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses key=value pairs", func(t *testing.T) {
		path := writeConfig(t, `
# database settings
HOST = db.internal
DATABASE=ediflux
user=reporting
PASSWORD=s=cr=et
PORT=5433
`)

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "ediflux", cfg.Database.Database)
		assert.Equal(t, "reporting", cfg.Database.User)
		// Only the first = splits; the value may contain more.
		assert.Equal(t, "s=cr=et", cfg.Database.Password)
		assert.Equal(t, 5433, cfg.Database.Port)
	})

	t.Run("missing fields fall back to defaults", func(t *testing.T) {
		path := writeConfig(t, "host=db.internal\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "your_database", cfg.Database.Database)
		assert.Equal(t, "your_username", cfg.Database.User)
		assert.Equal(t, "your_password", cfg.Database.Password)
		assert.Equal(t, 5432, cfg.Database.Port)
	})

	t.Run("skips comments, blanks and malformed lines", func(t *testing.T) {
		path := writeConfig(t, `
# comment
   # indented comment

not a key value line
host=db.internal
`)

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
	})

	t.Run("unparsable port falls back to default", func(t *testing.T) {
		path := writeConfig(t, "port=not-a-number\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, 5432, cfg.Database.Port)
	})

	t.Run("environment fills fields the file leaves unset", func(t *testing.T) {
		t.Setenv("KPI_DATABASE", "from_env")
		t.Setenv("KPI_PORT", "6000")
		path := writeConfig(t, "host=db.internal\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "from_env", cfg.Database.Database)
		assert.Equal(t, 6000, cfg.Database.Port)
	})

	t.Run("file values win over environment", func(t *testing.T) {
		t.Setenv("KPI_HOST", "env-host")
		path := writeConfig(t, "host=file-host\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "file-host", cfg.Database.Host)
	})

	t.Run("missing file returns ErrConfigMissing", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.txt"))
		assert.ErrorIs(t, err, apperrors.ErrConfigMissing)
	})
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	d := config.DatabaseConfig{
		Host:     "db.internal",
		Database: "ediflux",
		User:     "reporting",
		Password: "secret",
		Port:     5433,
	}

	assert.Equal(t,
		"host=db.internal port=5433 dbname=ediflux user=reporting password=secret",
		d.ConnString(),
	)
}

func TestDatabaseConfig_StringRedactsPassword(t *testing.T) {
	d := config.DatabaseConfig{Host: "h", Database: "d", User: "u", Password: "secret", Port: 5432}

	s := d.String()

	assert.NotContains(t, s, "secret")
	assert.Contains(t, s, "[REDACTED]")
}
