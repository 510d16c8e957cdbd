// Package report renders the outcome of one analysis run. It is a pure
// consumer: it reads AggregateStats and findings and writes text or JSON,
// touching nothing.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/loglens/internal/model"
)

// Format selects the report output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Data bundles everything a rendered report is given.
type Data struct {
	Source   string                  `json:"source,omitempty"`
	Stats    *model.AggregateStats   `json:"stats"`
	Findings []model.SecurityFinding `json:"findings"`
}

// Options tunes report rendering.
type Options struct {
	TopN     int
	NoColor  bool // strip styling, e.g. when writing to a file
	HourTopN int
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = model.DefaultTopN
	}
	if o.HourTopN <= 0 {
		o.HourTopN = model.DefaultHourBuckets
	}
	return o
}

// statusNames maps common HTTP status codes to short human-readable names.
// Unknown codes render as "Unknown"; they are legal input.
var statusNames = map[string]string{
	"200": "OK",
	"301": "Moved Permanently",
	"302": "Found",
	"304": "Not Modified",
	"400": "Bad Request",
	"401": "Unauthorized",
	"403": "Forbidden",
	"404": "Not Found",
	"500": "Internal Server Error",
	"502": "Bad Gateway",
	"503": "Service Unavailable",
}

// missingPageExtensions filters the 404 detail section to assets a reader
// would recognize as genuinely missing pages.
var missingPageExtensions = []string{".php", ".html", ".js", ".css", ".jpg", ".png"}

// StatusName returns the human-readable name for a status code token.
func StatusName(code string) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	return "Unknown"
}

// Render writes the report in the requested format.
func Render(w io.Writer, data Data, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, data)
	case FormatText, "":
		return RenderText(w, data, opts)
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}

// RenderJSON writes the report data as indented JSON.
func RenderJSON(w io.Writer, data Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	dim     lipgloss.Style
	alert   lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{title: plain, section: plain, dim: plain, alert: plain}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section: lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		alert:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// RenderText writes the human-readable report. An empty run is reported
// distinctly; percentages are only ever computed against a non-zero total.
func RenderText(w io.Writer, data Data, opts Options) error {
	opts = opts.withDefaults()
	st := newStyles(opts.NoColor)
	stats := data.Stats

	if stats == nil || stats.Empty() {
		_, err := fmt.Fprintln(w, st.alert.Render("No valid log entries found."))
		return err
	}

	var b strings.Builder
	rule := strings.Repeat("=", 60)
	total := stats.TotalRequests

	b.WriteString(rule + "\n")
	b.WriteString(st.title.Render("LOG ANALYSIS REPORT") + "\n")
	b.WriteString(rule + "\n")

	b.WriteString("\n" + st.section.Render("BASIC STATISTICS") + "\n")
	b.WriteString(fmt.Sprintf("   Total Requests: %d\n", total))

	b.WriteString("\n" + st.section.Render("STATUS CODE DISTRIBUTION") + "\n")
	for _, row := range stats.StatusCodes.Ranked() {
		b.WriteString(fmt.Sprintf("   %s %s: %d (%.1f%%)\n",
			row.Key, StatusName(row.Key), row.Count, percent(row.Count, total)))
	}

	if notFound := stats.StatusCodes.Count("404"); notFound > 0 {
		b.WriteString("\n" + st.section.Render("404 NOT FOUND ERRORS") + fmt.Sprintf(": %d\n", notFound))
		b.WriteString("   Top missing pages:\n")
		for _, row := range stats.URLs.Top(opts.TopN) {
			if hasMissingPageExtension(row.Key) {
				b.WriteString(fmt.Sprintf("     %s: %d\n", row.Key, row.Count))
			}
		}
	}

	writeRankedSection(&b, st, "TOP REQUESTED PAGES", stats.URLs.Top(opts.TopN), total)
	writeRankedSection(&b, st, "TOP IP ADDRESSES", stats.IPs.Top(opts.TopN), total)
	writeRankedSection(&b, st, "HOURLY ACTIVITY", stats.Hours.Top(opts.HourTopN), total)
	writeRankedSection(&b, st, "BROWSER DISTRIBUTION", stats.Browsers.Ranked(), total)
	if stats.Referrers.Len() > 0 {
		writeRankedSection(&b, st, "TOP REFERRERS", stats.Referrers.Top(opts.TopN), total)
	}

	b.WriteString("\n" + st.section.Render("SECURITY CHECKS") + "\n")
	if len(data.Findings) == 0 {
		b.WriteString("   " + st.dim.Render("No security signals detected.") + "\n")
	}
	for _, f := range data.Findings {
		b.WriteString("   " + st.alert.Render(fmt.Sprintf("Possible %s: %s", f.Category, f.EvidenceKey)) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRankedSection(b *strings.Builder, st styles, heading string, rows []model.KeyCount, total int64) {
	b.WriteString("\n" + st.section.Render(heading) + "\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("   %s: %d (%.1f%%)\n", row.Key, row.Count, percent(row.Count, total)))
	}
}

func percent(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func hasMissingPageExtension(url string) bool {
	for _, ext := range missingPageExtensions {
		if strings.Contains(url, ext) {
			return true
		}
	}
	return false
}
