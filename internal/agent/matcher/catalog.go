// internal/agent/matcher/catalog.go
package matcher

import "vendor-analytics-agent/internal/models"

// Rule binds one intent to its trigger phrases. Higher priority lifts the
// confidence of every phrase in the group.
type Rule struct {
	Intent   models.Intent
	Patterns []string
	Priority int
}

// Catalog returns the ordered rule set. Order matters: on equal confidence
// the earlier rule wins.
func Catalog() []Rule {
	return []Rule{
		{
			Intent: models.IntentVendorSummary,
			Patterns: []string{
				"show vendor summary",
				"vendor summary for",
				"get summary for vendor",
				"summary of vendor",
				"vendor performance for",
				"how is vendor",
				"vendor stats",
				"vendor metrics",
				"performance of vendor",
				"show me vendor",
			},
			Priority: 2,
		},
		{
			Intent: models.IntentCompare,
			Patterns: []string{
				"compare vendor",
				"compare vendors",
				"vendor comparison",
				"difference between vendor",
				"vs vendor",
				"versus vendor",
				"vendor 1 vs vendor 2",
				"vendor 1 and vendor 2",
				"how do vendor",
				"which is better",
			},
			Priority: 3,
		},
		{
			Intent: models.IntentTrend,
			Patterns: []string{
				"vendor trend",
				"trend for vendor",
				"weekly trend",
				"show me trend",
				"performance trend",
				"show trend",
				"now show trend",
				"trend over time",
				"historical performance",
				"week by week",
			},
			Priority: 2,
		},
		{
			Intent: models.IntentTopPerformers,
			Patterns: []string{
				"top vendor",
				"top performing vendor",
				"best vendor",
				"top 3 vendor",
				"top 5 vendor",
				"top 10 vendor",
				"highest performing",
				"best performing",
				"rank vendor",
				"leading vendor",
				"who are the best",
				"show vendors",
			},
			Priority: 3,
		},
		{
			Intent: models.IntentRejectionAnalysis,
			Patterns: []string{
				"failed submission",
				"rejection",
				"failed candidate",
				"why are candidates rejected",
				"rejection reason",
				"why rejected",
				"failure reason",
				"what went wrong",
				"rejection analysis",
				"failed profiles",
			},
			Priority: 3,
		},
	}
}
