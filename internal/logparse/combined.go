// Package logparse turns raw access-log lines into structured entries.
// The primary grammar is the Combined Log Format used by Nginx and Apache;
// lines it rejects go through a best-effort token heuristic. Malformed
// input degrades to a partial or empty result, never an error.
package logparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tinytelemetry/loglens/internal/model"
)

// combinedRegex matches the Combined Log Format:
// IP - - [timestamp] "METHOD URL PROTOCOL" STATUS SIZE "REFERRER" "USER_AGENT"
var combinedRegex = regexp.MustCompile(
	`^(?P<ip>\S+) - - \[(?P<timestamp>[^\]]+)\] ` +
		`"(?P<method>\w+) (?P<url>\S+) (?P<protocol>[\w/.]+)" ` +
		`(?P<status>\d+) (?P<size>\d+) "(?P<referrer>[^"]*)" ` +
		`"(?P<agent>[^"]*)"`,
)

// ipv4Regex matches tokens that look like an IPv4 address.
var ipv4Regex = regexp.MustCompile(`\d+\.\d+\.\d+\.\d+`)

// statusRegex matches tokens that are exactly three digits.
var statusRegex = regexp.MustCompile(`^\d{3}$`)

// minFallbackTokens is the token count below which the fallback heuristic
// does not even try; shorter lines carry too little structure to trust.
const minFallbackTokens = 7

// timestampLayout parses the date part of the timestamp field,
// e.g. "25/Dec/2023:10:15:32".
const timestampLayout = "02/Jan/2006:15:04:05"

// ParseLine parses one trimmed, non-empty log line. The primary grammar is
// tried first; only when it fails to match at all does the token fallback
// run. A fallback that extracts no field yields a NoMatch result.
func ParseLine(line string) model.ParseResult {
	if m := combinedRegex.FindStringSubmatch(line); m != nil {
		return model.ParseResult{
			Outcome: model.FullMatch,
			Entry:   entryFromMatch(m),
		}
	}
	return parseFallback(line)
}

func entryFromMatch(m []string) *model.LogEntry {
	entry := &model.LogEntry{}
	for i, name := range combinedRegex.SubexpNames() {
		switch name {
		case "ip":
			entry.ClientAddress = m[i]
		case "timestamp":
			entry.Timestamp = m[i]
		case "method":
			entry.Method = m[i]
		case "url":
			entry.URL = m[i]
		case "protocol":
			entry.Protocol = m[i]
		case "status":
			entry.StatusCode = m[i]
		case "size":
			// The grammar guarantees digits; a size too large for int64
			// is left at zero rather than failing the line.
			if n, err := strconv.ParseInt(m[i], 10, 64); err == nil {
				entry.ResponseSize = n
			}
		case "referrer":
			entry.Referrer = m[i]
		case "agent":
			entry.UserAgent = m[i]
		}
	}
	return entry
}

// parseFallback applies three independent token rules. Each rule takes the
// first matching token and may find nothing; absence means the field is
// omitted, not defaulted.
func parseFallback(line string) model.ParseResult {
	tokens := strings.Fields(line)
	if len(tokens) < minFallbackTokens {
		return model.ParseResult{Outcome: model.NoMatch}
	}

	partial := &model.PartialEntry{}
	for _, tok := range tokens {
		if ipv4Regex.MatchString(tok) {
			partial.ClientAddress = tok
			break
		}
	}
	for _, tok := range tokens {
		if statusRegex.MatchString(tok) {
			partial.StatusCode = tok
			break
		}
	}
	for _, tok := range tokens {
		if strings.Contains(tok, "/") && !strings.Contains(tok, "HTTP") {
			partial.URL = tok
			break
		}
	}

	if partial.ClientAddress == "" && partial.StatusCode == "" && partial.URL == "" {
		return model.ParseResult{Outcome: model.NoMatch}
	}
	return model.ParseResult{
		Outcome: model.PartialMatch,
		Partial: partial,
	}
}

// HourBucket derives the "HH:00" hourly bucket from a raw timestamp field.
// Only the token before the first space is considered, so the timezone
// offset never interferes. ok is false when the date part does not parse;
// the caller then skips hourly attribution for that line.
func HourBucket(timestamp string) (string, bool) {
	datePart := timestamp
	if idx := strings.IndexByte(timestamp, ' '); idx >= 0 {
		datePart = timestamp[:idx]
	}
	t, err := time.Parse(timestampLayout, datePart)
	if err != nil {
		return "", false
	}
	return t.Format("15") + ":00", true
}
