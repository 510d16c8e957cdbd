package model

// AggregateStats holds the running statistics for one analysis run.
// A single instance is created per run, mutated only through the
// aggregator, and read afterward by the scanner and report renderer.
type AggregateStats struct {
	TotalRequests int64         `json:"total_requests"`
	StatusCodes   *Distribution `json:"status_codes"`
	URLs          *Distribution `json:"urls"`
	IPs           *Distribution `json:"ips"`
	Hours         *Distribution `json:"hourly"`
	Browsers      *Distribution `json:"browsers"`
	Referrers     *Distribution `json:"referrers"`

	// RawUserAgents tracks the distinct user-agent strings as they appeared
	// in the log, separate from the classified browser buckets. The
	// security scanner needs the real strings, not the buckets.
	RawUserAgents *Distribution `json:"raw_user_agents"`
}

// NewAggregateStats creates a zero-valued stats instance.
func NewAggregateStats() *AggregateStats {
	return &AggregateStats{
		StatusCodes:   NewDistribution(),
		URLs:          NewDistribution(),
		IPs:           NewDistribution(),
		Hours:         NewDistribution(),
		Browsers:      NewDistribution(),
		Referrers:     NewDistribution(),
		RawUserAgents: NewDistribution(),
	}
}

// Empty reports whether the run produced no countable entries. The report
// renderer uses this to print a distinct "no data" notice instead of
// computing percentages of zero.
func (s *AggregateStats) Empty() bool {
	return s.TotalRequests == 0
}

// StatsReader is the read-only contract the scanner, report renderer, and
// HTTP API consume after ingestion completes.
type StatsReader interface {
	Stats() *AggregateStats
}
