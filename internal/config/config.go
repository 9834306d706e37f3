package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apperrors "github.com/lorrc/kpi-dashboard/internal/core/errors"
)

// DefaultPath is where the connection settings are expected when no explicit
// path is given.
const DefaultPath = "config.txt"

// Placeholder defaults matching the sample config shipped with the tool. The
// run fails at connection time when they are left in place, which is the
// intended nudge to fill in config.txt.
const (
	defaultHost     = "localhost"
	defaultDatabase = "your_database"
	defaultUser     = "your_username"
	defaultPassword = "your_password"
	defaultPort     = 5432
)

// Config holds all application configuration
type Config struct {
	// Database connection descriptor
	Database DatabaseConfig

	// Logging configuration
	Logging LoggingConfig
}

// DatabaseConfig is the immutable connection descriptor built once at
// startup. Credentials are not validated here; a bad password surfaces on the
// connection attempt.
type DatabaseConfig struct {
	Host     string
	Database string
	User     string
	Password string
	Port     int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load builds the configuration from the key=value file at path (DefaultPath
// when empty). A missing file returns ErrConfigMissing so the caller can
// print setup instructions instead of attempting a connection.
//
// Resolution order per field: config file, then KPI_* environment variables
// (a .env file is read first without overriding the process environment),
// then the built-in default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("stat config file %s: %w", path, err)
	}

	values, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	loadDotEnv()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     resolve(values, "host", "KPI_HOST", defaultHost),
			Database: resolve(values, "database", "KPI_DATABASE", defaultDatabase),
			User:     resolve(values, "user", "KPI_USER", defaultUser),
			Password: resolve(values, "password", "KPI_PASSWORD", defaultPassword),
			Port:     resolveInt(values, "port", "KPI_PORT", defaultPort),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

// parseFile reads key=value lines, skipping blanks and # comments. Keys are
// lower-cased and trimmed, values trimmed; the split happens on the first =
// so values may themselves contain equal signs.
func parseFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		values[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return values, nil
}

// loadDotEnv reads an optional .env file into the process environment without
// overwriting variables that are already set.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	m, err := godotenv.Read(".env")
	if err != nil {
		return
	}
	for k, v := range m {
		if os.Getenv(k) == "" {
			os.Setenv(k, v)
		}
	}
}

func resolve(values map[string]string, key, envKey, defaultValue string) string {
	if v, ok := values[key]; ok && v != "" {
		return v
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

func resolveInt(values map[string]string, key, envKey string, defaultValue int) int {
	if v := resolve(values, key, envKey, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ConnString returns a keyword/value DSN understood by pgx.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s",
		d.Host, d.Port, d.Database, d.User, d.Password,
	)
}

// String returns a redacted string representation of the descriptor (safe for
// logging).
func (d DatabaseConfig) String() string {
	return fmt.Sprintf(
		"DatabaseConfig{Host: %s, Port: %d, Database: %s, User: %s, Password: [REDACTED]}",
		d.Host, d.Port, d.Database, d.User,
	)
}
