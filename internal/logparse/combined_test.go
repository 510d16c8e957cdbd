package logparse

import (
	"testing"

	"github.com/tinytelemetry/loglens/internal/model"
)

const combinedLine = `192.168.1.100 - - [25/Dec/2023:10:15:32 +0000] "GET /index.html HTTP/1.1" 200 1524 "https://example.com" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`

func TestParseLine_Combined(t *testing.T) {
	t.Parallel()

	res := ParseLine(combinedLine)
	if res.Outcome != model.FullMatch {
		t.Fatalf("outcome = %v, want FullMatch", res.Outcome)
	}
	entry := res.Entry
	if entry.ClientAddress != "192.168.1.100" {
		t.Errorf("client = %q, want 192.168.1.100", entry.ClientAddress)
	}
	if entry.Timestamp != "25/Dec/2023:10:15:32 +0000" {
		t.Errorf("timestamp = %q", entry.Timestamp)
	}
	if entry.Method != "GET" || entry.URL != "/index.html" || entry.Protocol != "HTTP/1.1" {
		t.Errorf("request line = %q %q %q", entry.Method, entry.URL, entry.Protocol)
	}
	if entry.StatusCode != "200" {
		t.Errorf("status = %q, want 200", entry.StatusCode)
	}
	if entry.ResponseSize != 1524 {
		t.Errorf("size = %d, want 1524", entry.ResponseSize)
	}
	if entry.Referrer != "https://example.com" {
		t.Errorf("referrer = %q", entry.Referrer)
	}
	if entry.UserAgent != "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" {
		t.Errorf("agent = %q", entry.UserAgent)
	}
}

func TestParseLine_UnknownStatusCodeIsLegal(t *testing.T) {
	t.Parallel()

	line := `10.0.0.1 - - [01/Jan/2024:00:00:00 +0000] "GET / HTTP/1.1" 799 10 "-" "-"`
	res := ParseLine(line)
	if res.Outcome != model.FullMatch {
		t.Fatalf("outcome = %v, want FullMatch", res.Outcome)
	}
	if res.Entry.StatusCode != "799" {
		t.Errorf("status = %q, want 799", res.Entry.StatusCode)
	}
}

func TestParseLine_FallbackExtractsFields(t *testing.T) {
	t.Parallel()

	line := "some proxy 10.1.2.3 hit /admin/panel with 503 today"
	res := ParseLine(line)
	if res.Outcome != model.PartialMatch {
		t.Fatalf("outcome = %v, want PartialMatch", res.Outcome)
	}
	p := res.Partial
	if p.ClientAddress != "10.1.2.3" {
		t.Errorf("client = %q, want 10.1.2.3", p.ClientAddress)
	}
	if p.StatusCode != "503" {
		t.Errorf("status = %q, want 503", p.StatusCode)
	}
	if p.URL != "/admin/panel" {
		t.Errorf("url = %q, want /admin/panel", p.URL)
	}
}

func TestParseLine_FallbackRulesAreIndependent(t *testing.T) {
	t.Parallel()

	// No IP-shaped token and no URL, only a status code.
	line := "alpha beta gamma delta 404 epsilon zeta"
	res := ParseLine(line)
	if res.Outcome != model.PartialMatch {
		t.Fatalf("outcome = %v, want PartialMatch", res.Outcome)
	}
	if res.Partial.ClientAddress != "" || res.Partial.URL != "" {
		t.Errorf("unexpected fields: %+v", res.Partial)
	}
	if res.Partial.StatusCode != "404" {
		t.Errorf("status = %q, want 404", res.Partial.StatusCode)
	}
}

func TestParseLine_FallbackSkipsHTTPTokens(t *testing.T) {
	t.Parallel()

	// "HTTP/1.1" contains a slash but must not be taken as the URL.
	line := `broken "GET HTTP/1.1" one two three four five /real/path`
	res := ParseLine(line)
	if res.Outcome != model.PartialMatch {
		t.Fatalf("outcome = %v, want PartialMatch", res.Outcome)
	}
	if res.Partial.URL != "/real/path" {
		t.Errorf("url = %q, want /real/path", res.Partial.URL)
	}
}

func TestParseLine_TooFewTokens(t *testing.T) {
	t.Parallel()

	res := ParseLine("10.0.0.1 GET /x 200")
	if res.Outcome != model.NoMatch {
		t.Fatalf("outcome = %v, want NoMatch for a short line", res.Outcome)
	}
}

func TestParseLine_FallbackWithNoFieldsIsNoMatch(t *testing.T) {
	t.Parallel()

	res := ParseLine("one two three four five six seven eight")
	if res.Outcome != model.NoMatch {
		t.Fatalf("outcome = %v, want NoMatch when no rule fires", res.Outcome)
	}
}

func TestParseLine_BadTimestampStaysOnPrimaryPath(t *testing.T) {
	t.Parallel()

	// The primary grammar matches; a garbage timestamp only costs the
	// hourly bucket, it does not demote the line to the fallback.
	line := `10.0.0.1 - - [not-a-date] "GET /x HTTP/1.1" 200 10 "-" "-"`
	res := ParseLine(line)
	if res.Outcome != model.FullMatch {
		t.Fatalf("outcome = %v, want FullMatch", res.Outcome)
	}
	if _, ok := HourBucket(res.Entry.Timestamp); ok {
		t.Error("HourBucket should fail for a garbage timestamp")
	}
}

func TestHourBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"with offset", "25/Dec/2023:10:15:32 +0000", "10:00", true},
		{"without offset", "01/Jan/2024:23:59:59", "23:00", true},
		{"midnight", "01/Jan/2024:00:00:01 +0200", "00:00", true},
		{"garbage", "yesterday around noon", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := HourBucket(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Errorf("HourBucket(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}
