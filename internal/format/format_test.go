// internal/format/format_test.go
package format

import (
	"testing"
	"time"

	"vendor-analytics-agent/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func testRange() models.DateRange {
	return models.DateRange{
		Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
}

func summaryOf(id string, shared, interviewed, onboarded int) models.VendorSummary {
	s := models.VendorSummary{
		VendorID:         id,
		DateRange:        testRange(),
		Shared:           shared,
		Interviewed:      interviewed,
		Onboarded:        onboarded,
		AvgDaysToOnboard: 12.5,
	}
	if shared > 0 {
		s.JoinRatio = float64(onboarded) / float64(shared)
	}
	return s
}

// ==========================
// Renderer Tests
// ==========================

func TestVendorSummary(t *testing.T) {
	s := summaryOf("VENDOR_1", 50, 20, 10)

	out := VendorSummary(&s)

	assert.Contains(t, out, "VENDOR PERFORMANCE DASHBOARD - VENDOR_1")
	assert.Contains(t, out, "Profiles Shared:         50")
	assert.Contains(t, out, "Join Ratio:            20.0%")
	assert.Contains(t, out, "Assessment: Moderate performance")
}

func TestVendorSummary_Assessments(t *testing.T) {
	tests := []struct {
		name      string
		onboarded int
		expected  string
	}{
		{name: "excellent", onboarded: 35, expected: "Excellent performance"},
		{name: "good", onboarded: 25, expected: "Good performance"},
		{name: "moderate", onboarded: 15, expected: "Moderate performance"},
		{name: "poor", onboarded: 2, expected: "Needs improvement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := summaryOf("VENDOR_1", 50, 40, tt.onboarded)
			assert.Contains(t, VendorSummary(&s), tt.expected)
		})
	}
}

func TestComparison_NamesWinner(t *testing.T) {
	c := &models.ComparisonResult{
		VendorA: summaryOf("VENDOR_1", 50, 20, 10),
		VendorB: summaryOf("VENDOR_2", 40, 25, 20),
	}

	out := Comparison(c)

	assert.Contains(t, out, "VENDOR COMPARISON DASHBOARD")
	assert.Contains(t, out, "Winner: VENDOR_2 with 50.0% join ratio")
}

func TestComparison_Tie(t *testing.T) {
	c := &models.ComparisonResult{
		VendorA: summaryOf("VENDOR_1", 50, 20, 10),
		VendorB: summaryOf("VENDOR_2", 50, 20, 10),
	}

	assert.Contains(t, Comparison(c), "Both vendors have equal performance")
}

func TestTrend_DirectionMarkers(t *testing.T) {
	tr := &models.TrendResult{
		VendorID: "VENDOR_3",
		Weeks:    4,
		Points: []models.TrendPoint{
			{Year: 2024, Week: 20, Shared: 8, Interviewed: 4, Onboarded: 2},
			{Year: 2024, Week: 21, Shared: 9, Interviewed: 5, Onboarded: 4},
			{Year: 2024, Week: 22, Shared: 7, Interviewed: 3, Onboarded: 1},
			{Year: 2024, Week: 23, Shared: 7, Interviewed: 3, Onboarded: 1},
		},
	}

	out := Trend(tr)

	assert.Contains(t, out, "WEEKLY PERFORMANCE TREND - VENDOR_3")
	assert.Contains(t, out, "W21/2024 |       9 |           5 |         4 | up")
	assert.Contains(t, out, "W22/2024 |       7 |           3 |         1 | down")
	assert.Contains(t, out, "W23/2024 |       7 |           3 |         1 | flat")
	assert.Contains(t, out, "Total Shared:       31")
	assert.Contains(t, out, "Total Onboarded:    8")
}

func TestTrend_Empty(t *testing.T) {
	out := Trend(&models.TrendResult{VendorID: "VENDOR_1", Weeks: 8})

	assert.Equal(t, "No trend data available for the specified period.", out)
}

func TestTopPerformers_BarsAndRanks(t *testing.T) {
	tp := &models.TopPerformersResult{
		DateRange: testRange(),
		Rows: []models.PerformerRow{
			{Rank: 1, VendorID: "VENDOR_7", Shared: 40, Onboarded: 28, JoinRatio: 0.7},
			{Rank: 2, VendorID: "VENDOR_2", Shared: 50, Onboarded: 10, JoinRatio: 0.2},
		},
	}

	out := TopPerformers(tp)

	assert.Contains(t, out, "TOP PERFORMING VENDORS LEADERBOARD")
	assert.Contains(t, out, "#  1 |     VENDOR_7")
	assert.Contains(t, out, "#######...")
	assert.Contains(t, out, "##........")
}

func TestRejections_PercentagesAndPrimaryIssue(t *testing.T) {
	r := &models.RejectionReport{
		DateRange:       testRange(),
		TotalRejections: 40,
		TopReasons: []models.RejectionReason{
			{Reason: "Skills mismatch", Count: 20},
			{Reason: "Candidate withdrew", Count: 10},
		},
	}

	out := Rejections(r)

	assert.Contains(t, out, "Total Rejections: 40")
	assert.Contains(t, out, "( 50.0%)")
	assert.Contains(t, out, "( 25.0%)")
	assert.Contains(t, out, "Primary issue: Skills mismatch")
}

func TestRatioBar_Bounds(t *testing.T) {
	assert.Equal(t, "..........", ratioBar(0))
	assert.Equal(t, "##########", ratioBar(1))
	assert.Equal(t, "##########", ratioBar(1.4))
	assert.Equal(t, "..........", ratioBar(-0.2))
	assert.Equal(t, "#####.....", ratioBar(0.55))
}

func TestRender_Dispatch(t *testing.T) {
	s := summaryOf("VENDOR_1", 50, 20, 10)

	out, err := Render(&s)
	require.NoError(t, err)
	assert.Contains(t, out, "VENDOR PERFORMANCE DASHBOARD")

	_, err = Render("not a result")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no renderer")
}
