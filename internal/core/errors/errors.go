package errors

import "errors"

// Domain errors - each maps to one fatal branch of the run.
var (
	// ErrConfigMissing means config.txt was not found. Expected on first run;
	// the caller prints setup instructions instead of a stack trace.
	ErrConfigMissing = errors.New("configuration file not found")

	// ErrConnectionFailed means the single connection attempt to PostgreSQL
	// did not succeed. No retry is performed.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrNoData means every KPI query failed or returned nothing, so there is
	// nothing to render. Individual query failures are not fatal; an entirely
	// empty run is.
	ErrNoData = errors.New("no KPI data retrieved")

	// ErrRenderFailed means the HTML report could not be produced or written.
	ErrRenderFailed = errors.New("report generation failed")
)
