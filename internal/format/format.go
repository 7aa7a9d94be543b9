// internal/format/format.go
package format

import (
	"fmt"
	"strings"

	"vendor-analytics-agent/internal/models"
)

// Dashboard-style text renderings for the five result shapes. Every
// renderer is pure and returns a multi-line block framed by rules, ready
// for terminal output.

const ruleWidth = 60

func rule(ch string) string {
	return strings.Repeat(ch, ruleWidth)
}

// Render dispatches on the result type. Unknown types indicate a wiring
// bug between the registry and the formatter.
func Render(result interface{}) (string, error) {
	switch v := result.(type) {
	case *models.VendorSummary:
		return VendorSummary(v), nil
	case *models.ComparisonResult:
		return Comparison(v), nil
	case *models.TrendResult:
		return Trend(v), nil
	case *models.TopPerformersResult:
		return TopPerformers(v), nil
	case *models.RejectionReport:
		return Rejections(v), nil
	default:
		return "", fmt.Errorf("no renderer for result type %T", result)
	}
}

// VendorSummary renders the single-vendor performance panel.
func VendorSummary(s *models.VendorSummary) string {
	if s == nil {
		return "No data available for this vendor."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "VENDOR PERFORMANCE DASHBOARD - %s\n", s.VendorID)
	fmt.Fprintf(&b, "Period: %s\n", s.DateRange.String())
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "Candidate Flow:\n")
	fmt.Fprintf(&b, "  Profiles Shared:       %4d\n", s.Shared)
	fmt.Fprintf(&b, "  Interviews Conducted:  %4d\n", s.Interviewed)
	fmt.Fprintf(&b, "  Successfully Onboarded:%4d\n", s.Onboarded)
	fmt.Fprintf(&b, "Key Metrics:\n")
	fmt.Fprintf(&b, "  Join Ratio:          %6.1f%%\n", s.JoinRatio*100)
	fmt.Fprintf(&b, "  Avg Time to Hire:    %6.1f days\n", s.AvgDaysToOnboard)
	fmt.Fprintf(&b, "Assessment: %s\n", assessment(s.JoinRatio))
	fmt.Fprintf(&b, "%s", rule("="))
	return b.String()
}

func assessment(joinRatio float64) string {
	switch {
	case joinRatio >= 0.6:
		return "Excellent performance"
	case joinRatio >= 0.4:
		return "Good performance"
	case joinRatio >= 0.2:
		return "Moderate performance"
	default:
		return "Needs improvement"
	}
}

// Comparison renders the side-by-side panel and names the winner by
// join ratio.
func Comparison(c *models.ComparisonResult) string {
	if c == nil {
		return "No comparison data available."
	}

	a, vb := c.VendorA, c.VendorB

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "VENDOR COMPARISON DASHBOARD\n")
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "%-28s vs %28s\n", a.VendorID, vb.VendorID)
	fmt.Fprintf(&b, "%s\n", rule("-"))
	fmt.Fprintf(&b, "%s", comparisonRow("Profiles Shared", a.Shared, vb.Shared))
	fmt.Fprintf(&b, "%s", comparisonRow("Interviews", a.Interviewed, vb.Interviewed))
	fmt.Fprintf(&b, "%s", comparisonRow("Onboarded", a.Onboarded, vb.Onboarded))
	fmt.Fprintf(&b, "%20s: %6.1f%% %s | %6.1f%% %s\n", "Join Ratio",
		a.JoinRatio*100, winnerMark(a.JoinRatio > vb.JoinRatio),
		vb.JoinRatio*100, winnerMark(vb.JoinRatio > a.JoinRatio))
	fmt.Fprintf(&b, "%s\n", rule("-"))

	switch {
	case a.JoinRatio > vb.JoinRatio:
		fmt.Fprintf(&b, "Winner: %s with %.1f%% join ratio\n", a.VendorID, a.JoinRatio*100)
	case vb.JoinRatio > a.JoinRatio:
		fmt.Fprintf(&b, "Winner: %s with %.1f%% join ratio\n", vb.VendorID, vb.JoinRatio*100)
	default:
		fmt.Fprintf(&b, "Both vendors have equal performance\n")
	}
	fmt.Fprintf(&b, "%s", rule("="))
	return b.String()
}

func comparisonRow(label string, a, b int) string {
	return fmt.Sprintf("%20s: %6d %s | %6d %s\n", label,
		a, winnerMark(a > b), b, winnerMark(b > a))
}

func winnerMark(won bool) string {
	if won {
		return "(*)"
	}
	return "   "
}

// Trend renders the week-by-week table with direction markers and a
// period summary.
func Trend(t *models.TrendResult) string {
	if t == nil || len(t.Points) == 0 {
		return "No trend data available for the specified period."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "WEEKLY PERFORMANCE TREND - %s\n", t.VendorID)
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "%8s | %7s | %11s | %9s | Trend\n", "Week", "Shared", "Interviewed", "Onboarded")
	fmt.Fprintf(&b, "%s\n", rule("-"))

	totalShared, totalOnboarded := 0, 0
	for i, p := range t.Points {
		marker := "-"
		if i > 0 {
			prev := t.Points[i-1].Onboarded
			switch {
			case p.Onboarded > prev:
				marker = "up"
			case p.Onboarded < prev:
				marker = "down"
			default:
				marker = "flat"
			}
		}
		fmt.Fprintf(&b, "W%02d/%d | %7d | %11d | %9d | %s\n",
			p.Week, p.Year, p.Shared, p.Interviewed, p.Onboarded, marker)
		totalShared += p.Shared
		totalOnboarded += p.Onboarded
	}

	avgRatio := 0.0
	if totalShared > 0 {
		avgRatio = float64(totalOnboarded) / float64(totalShared)
	}
	fmt.Fprintf(&b, "%s\n", rule("-"))
	fmt.Fprintf(&b, "Period Summary:\n")
	fmt.Fprintf(&b, "  Total Shared:       %d\n", totalShared)
	fmt.Fprintf(&b, "  Total Onboarded:    %d\n", totalOnboarded)
	fmt.Fprintf(&b, "  Average Join Ratio: %.1f%%\n", avgRatio*100)
	fmt.Fprintf(&b, "%s", rule("="))
	return b.String()
}

// TopPerformers renders the leaderboard with ten-segment rating bars.
func TopPerformers(tp *models.TopPerformersResult) string {
	if tp == nil || len(tp.Rows) == 0 {
		return "No performers data available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "TOP PERFORMING VENDORS LEADERBOARD\n")
	fmt.Fprintf(&b, "Period: %s\n", tp.DateRange.String())
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "%4s | %12s | %9s | %6s | %7s | Rating\n", "Rank", "Vendor", "Onboarded", "Shared", "Join %")
	fmt.Fprintf(&b, "%s\n", rule("-"))

	for _, row := range tp.Rows {
		fmt.Fprintf(&b, "#%3d | %12s | %9d | %6d | %6.1f%% | %s\n",
			row.Rank, row.VendorID, row.Onboarded, row.Shared,
			row.JoinRatio*100, ratioBar(row.JoinRatio))
	}
	fmt.Fprintf(&b, "%s", rule("="))
	return b.String()
}

// ratioBar maps a ratio in [0,1] onto a ten-segment bar.
func ratioBar(ratio float64) string {
	filled := int(ratio * 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", 10-filled)
}

// Rejections renders the failure breakdown with percentages and the
// primary-issue callout.
func Rejections(r *models.RejectionReport) string {
	if r == nil {
		return "No failure data available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "REJECTION ANALYSIS DASHBOARD\n")
	fmt.Fprintf(&b, "Period: %s\n", r.DateRange.String())
	fmt.Fprintf(&b, "%s\n", rule("="))
	fmt.Fprintf(&b, "Total Rejections: %d\n", r.TotalRejections)

	if len(r.TopReasons) > 0 {
		fmt.Fprintf(&b, "Top Rejection Reasons:\n")
		fmt.Fprintf(&b, "%s\n", rule("-"))
		for i, reason := range r.TopReasons {
			pct := 0.0
			if r.TotalRejections > 0 {
				pct = float64(reason.Count) / float64(r.TotalRejections) * 100
			}
			fmt.Fprintf(&b, "%d. %-30s %3d (%5.1f%%) %s\n",
				i+1, reason.Reason, reason.Count, pct, ratioBar(pct/100))
		}
		fmt.Fprintf(&b, "Primary issue: %s\n", r.TopReasons[0].Reason)
	}
	fmt.Fprintf(&b, "%s", rule("="))
	return b.String()
}
