// Package ingest accumulates parsed log entries into running statistics.
package ingest

import (
	"github.com/tinytelemetry/loglens/internal/logparse"
	"github.com/tinytelemetry/loglens/internal/model"
)

// Aggregator owns one AggregateStats instance and is its only write path.
// Counters grow with the number of distinct keys, not with request volume,
// so memory stays linear in key cardinality across a one-pass run.
type Aggregator struct {
	stats *model.AggregateStats
}

// NewAggregator creates an aggregator with fresh zero-valued statistics.
func NewAggregator() *Aggregator {
	return &Aggregator{stats: model.NewAggregateStats()}
}

// Stats returns the accumulated statistics for read-only consumption.
func (a *Aggregator) Stats() *model.AggregateStats {
	return a.stats
}

// Ingest feeds one parse result into the statistics. Every FullMatch or
// PartialMatch call increments TotalRequests exactly once, however partial
// the result; NoMatch results contribute nothing. Ingest never fails.
func (a *Aggregator) Ingest(res model.ParseResult) {
	switch res.Outcome {
	case model.FullMatch:
		a.stats.TotalRequests++
		a.ingestEntry(res.Entry)
	case model.PartialMatch:
		a.stats.TotalRequests++
		a.ingestPartial(res.Partial)
	}
}

func (a *Aggregator) ingestEntry(entry *model.LogEntry) {
	a.stats.StatusCodes.Inc(entry.StatusCode)
	if entry.URL != model.AbsentField {
		a.stats.URLs.Inc(entry.URL)
	}
	a.stats.IPs.Inc(entry.ClientAddress)

	if hour, ok := logparse.HourBucket(entry.Timestamp); ok {
		a.stats.Hours.Inc(hour)
	}

	if entry.UserAgent != "" && entry.UserAgent != model.AbsentField {
		a.stats.Browsers.Inc(logparse.ClassifyBrowser(entry.UserAgent))
		a.stats.RawUserAgents.Inc(entry.UserAgent)
	}
	if entry.Referrer != "" && entry.Referrer != model.AbsentField {
		a.stats.Referrers.Inc(entry.Referrer)
	}
}

func (a *Aggregator) ingestPartial(partial *model.PartialEntry) {
	// Inc ignores empty keys, so absent fields stay absent.
	a.stats.IPs.Inc(partial.ClientAddress)
	a.stats.StatusCodes.Inc(partial.StatusCode)
	a.stats.URLs.Inc(partial.URL)
}
