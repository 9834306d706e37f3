package domain

// Severity is the visual class attached to a KPI cell in the report.
type Severity string

const (
	// SeverityWarning marks a backlog that needs attention.
	SeverityWarning Severity = "warning"
	// SeverityGood marks a fully processed dossier.
	SeverityGood Severity = "good"
	// SeverityNeutral renders without any highlight.
	SeverityNeutral Severity = ""
)

// Review thresholds agreed with the accounting team. Intentionally not
// configurable.
const (
	piecesBacklogThreshold   = 50
	suspenseBacklogThreshold = 10
)

// Classify maps a (metric, value) pair to its severity. Metrics without
// threshold rules are always neutral.
func Classify(metric string, value int64) Severity {
	switch metric {
	case ColPiecesToProcess:
		return classifyBacklog(value, piecesBacklogThreshold)
	case ColSuspenseAccounts:
		return classifyBacklog(value, suspenseBacklogThreshold)
	default:
		return SeverityNeutral
	}
}

func classifyBacklog(value, threshold int64) Severity {
	switch {
	case value > threshold:
		return SeverityWarning
	case value == 0:
		return SeverityGood
	default:
		return SeverityNeutral
	}
}
