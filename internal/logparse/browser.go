package logparse

import "strings"

// Browser bucket names produced by ClassifyBrowser.
const (
	BrowserBot     = "Bot/Crawler"
	BrowserEdge    = "Edge"
	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserOther   = "Other"
)

// ClassifyBrowser maps a raw user-agent string onto a coarse browser
// bucket. Checks are case-insensitive substring tests; the first match
// wins. Edge and Chrome are tested before Safari because real Chrome and
// Edge user agents also carry a "Safari" token.
func ClassifyBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "bot") || strings.Contains(ua, "crawler"):
		return BrowserBot
	case strings.Contains(ua, "edge"):
		return BrowserEdge
	case strings.Contains(ua, "chrome"):
		return BrowserChrome
	case strings.Contains(ua, "firefox"):
		return BrowserFirefox
	case strings.Contains(ua, "safari"):
		return BrowserSafari
	default:
		return BrowserOther
	}
}
