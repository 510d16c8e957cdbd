package logparse

import "testing"

func TestClassifyBrowser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"chrome with safari token", "Mozilla/5.0 (Windows NT 10.0) Chrome/91.0 Safari/537.36", BrowserChrome},
		{"plain safari", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/537.36", BrowserSafari},
		{"edge before chrome", "Mozilla/5.0 (Windows NT 10.0) Chrome/91.0 Safari/537.36 Edge/91.0", BrowserEdge},
		{"firefox", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Firefox/89.0", BrowserFirefox},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1)", BrowserBot},
		{"crawler", "SomeCrawler/1.0", BrowserBot},
		{"case insensitive", "CHROME/99", BrowserChrome},
		{"unrecognized", "sqlmap/1.4.2", BrowserOther},
		{"empty", "", BrowserOther},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyBrowser(tc.ua); got != tc.want {
				t.Errorf("ClassifyBrowser(%q) = %q, want %q", tc.ua, got, tc.want)
			}
		})
	}
}
