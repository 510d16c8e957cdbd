// Package secscan inspects accumulated statistics for security signals.
// It holds two static rule sets: a list of scanner/tooling user-agent
// substrings and a table of URL attack patterns.
package secscan

import (
	"strings"

	"github.com/tinytelemetry/loglens/internal/model"
)

// suspiciousAgents are tool signatures tested against every distinct raw
// user-agent string. Matching is case-insensitive substring containment.
var suspiciousAgents = []string{"sqlmap", "nikto", "metasploit", "nmap", "havij"}

// attackRule pairs a finding category with its lowercase URL patterns.
type attackRule struct {
	category model.FindingCategory
	patterns []string
}

// attackRules is tested against every distinct URL key. Order is fixed so
// scan output stays deterministic.
var attackRules = []attackRule{
	{model.CategorySQLInjection, []string{"union select", "or 1=1", "drop table", "insert into"}},
	{model.CategoryXSS, []string{"<script>", "javascript:", "onload=", "onerror="}},
	{model.CategoryPathTraversal, []string{"../", `..\`, "/etc/passwd"}},
	{model.CategoryCommandInjection, []string{";ls", "|cat", "`id`", "$(whoami)"}},
}

// Scan derives security findings from the accumulated statistics. It reads
// the stats and never mutates them. A user agent emits at most one
// suspicious-agent finding; a URL emits one finding for every attack
// pattern it contains, so a URL carrying two traversal markers yields two
// findings. Keys are visited in first-seen order and patterns in rule-table
// order, so repeated runs over the same input produce identical output.
func Scan(stats *model.AggregateStats) []model.SecurityFinding {
	var findings []model.SecurityFinding

	for _, agent := range stats.RawUserAgents.Keys() {
		lower := strings.ToLower(agent)
		for _, sig := range suspiciousAgents {
			if strings.Contains(lower, sig) {
				findings = append(findings, model.SecurityFinding{
					Category:    model.CategorySuspiciousAgent,
					EvidenceKey: agent,
				})
				break
			}
		}
	}

	urls := stats.URLs.Keys()
	for _, rule := range attackRules {
		for _, url := range urls {
			lower := strings.ToLower(url)
			for _, pattern := range rule.patterns {
				if strings.Contains(lower, pattern) {
					findings = append(findings, model.SecurityFinding{
						Category:    rule.category,
						EvidenceKey: url,
					})
				}
			}
		}
	}

	return findings
}
