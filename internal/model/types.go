package model

// LogEntry represents one access-log line matched by the primary
// Combined Log Format grammar. It is the canonical type flowing from the
// parser into the aggregator.
type LogEntry struct {
	ClientAddress string `json:"client_address"`
	Timestamp     string `json:"timestamp"` // raw timestamp field, e.g. "25/Dec/2023:10:15:32 +0000"
	Method        string `json:"method"`
	URL           string `json:"url"`
	Protocol      string `json:"protocol"`
	StatusCode    string `json:"status_code"` // 3-digit token, not validated against an enum
	ResponseSize  int64  `json:"response_size"`
	Referrer      string `json:"referrer"`
	UserAgent     string `json:"user_agent"`
}

// PartialEntry holds the fields the fallback heuristic managed to extract
// from a line the primary grammar rejected. Empty string means the field
// was not found and must not be counted anywhere.
type PartialEntry struct {
	ClientAddress string `json:"client_address,omitempty"`
	StatusCode    string `json:"status_code,omitempty"`
	URL           string `json:"url,omitempty"`
}

// Outcome tags the result of parsing one line.
type Outcome int

const (
	// NoMatch means neither grammar extracted anything; the line is dropped.
	NoMatch Outcome = iota
	// FullMatch means the primary grammar matched and Entry is set.
	FullMatch
	// PartialMatch means the fallback heuristic extracted at least one
	// field and Partial is set.
	PartialMatch
)

// ParseResult is the tagged outcome of parsing one trimmed non-empty line.
// Exactly one of Entry and Partial is non-nil, matching Outcome.
type ParseResult struct {
	Outcome Outcome
	Entry   *LogEntry
	Partial *PartialEntry
}

// FindingCategory names one class of security signal.
type FindingCategory string

const (
	CategorySuspiciousAgent  FindingCategory = "Suspicious User Agent"
	CategorySQLInjection     FindingCategory = "SQL Injection"
	CategoryXSS              FindingCategory = "XSS"
	CategoryPathTraversal    FindingCategory = "Path Traversal"
	CategoryCommandInjection FindingCategory = "Command Injection"
)

// SecurityFinding is one (category, offending key) pair emitted by the
// scanner. Findings are derived from AggregateStats and never written back.
type SecurityFinding struct {
	Category    FindingCategory `json:"category"`
	EvidenceKey string          `json:"evidence"` // the matching user agent or URL
}
