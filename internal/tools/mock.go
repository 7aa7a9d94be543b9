// internal/tools/mock.go
package tools

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"vendor-analytics-agent/internal/models"
)

// MockStore serves deterministic synthetic data for offline runs and tests.
// Numbers derive from the vendor id, so the same query always returns the
// same dashboard.
type MockStore struct {
	now func() time.Time
}

func NewMockStore(now func() time.Time) *MockStore {
	if now == nil {
		now = time.Now
	}
	return &MockStore{now: now}
}

// vendorNum parses the numeric part of VENDOR_<n>. Inputs reach this store
// already validated, so a parse failure just seeds with 1.
func vendorNum(vendorID string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(vendorID, "VENDOR_"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (s *MockStore) VendorSummary(ctx context.Context, vendorID string, rng models.DateRange) (*models.VendorSummary, error) {
	n := vendorNum(vendorID)
	shared := 30 + (n*17)%40
	interviewed := shared * (40 + (n*7)%35) / 100
	onboarded := interviewed * (30 + (n*11)%40) / 100

	out := &models.VendorSummary{
		VendorID:         vendorID,
		DateRange:        rng,
		Shared:           shared,
		Interviewed:      interviewed,
		Onboarded:        onboarded,
		AvgDaysToOnboard: float64(10 + (n*3)%15),
	}
	if shared > 0 {
		out.JoinRatio = float64(onboarded) / float64(shared)
	}
	return out, nil
}

func (s *MockStore) CompareVendors(ctx context.Context, vendorA, vendorB string, rng models.DateRange) (*models.ComparisonResult, error) {
	a, err := s.VendorSummary(ctx, vendorA, rng)
	if err != nil {
		return nil, err
	}
	b, err := s.VendorSummary(ctx, vendorB, rng)
	if err != nil {
		return nil, err
	}
	return &models.ComparisonResult{VendorA: *a, VendorB: *b}, nil
}

func (s *MockStore) VendorTrend(ctx context.Context, vendorID string, weeks int) (*models.TrendResult, error) {
	n := vendorNum(vendorID)
	out := &models.TrendResult{VendorID: vendorID, Weeks: weeks}

	cursor := s.now().UTC().AddDate(0, 0, -7*(weeks-1))
	for i := 0; i < weeks; i++ {
		year, week := cursor.ISOWeek()
		shared := 5 + (n+i*3)%12
		interviewed := shared * (35 + (n+i)%30) / 100
		out.Points = append(out.Points, models.TrendPoint{
			Year:        year,
			Week:        week,
			Shared:      shared,
			Interviewed: interviewed,
			Onboarded:   interviewed * (30 + (n+i*5)%35) / 100,
		})
		cursor = cursor.AddDate(0, 0, 7)
	}
	return out, nil
}

func (s *MockStore) TopPerformers(ctx context.Context, limit int, rng models.DateRange) (*models.TopPerformersResult, error) {
	const vendorPool = 12

	rows := make([]models.PerformerRow, 0, vendorPool)
	for n := 1; n <= vendorPool; n++ {
		shared := 30 + (n*17)%40
		onboarded := shared * (15 + (n*13)%30) / 100
		row := models.PerformerRow{
			VendorID:  "VENDOR_" + strconv.Itoa(n),
			Shared:    shared,
			Onboarded: onboarded,
		}
		if shared > 0 {
			row.JoinRatio = float64(onboarded) / float64(shared)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Onboarded > rows[j].Onboarded
	})
	if limit < len(rows) {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return &models.TopPerformersResult{DateRange: rng, Rows: rows}, nil
}

func (s *MockStore) RejectionAnalysis(ctx context.Context, rng models.DateRange) (*models.RejectionReport, error) {
	reasons := []models.RejectionReason{
		{Reason: "Skills mismatch", Count: 34},
		{Reason: "Salary expectations too high", Count: 21},
		{Reason: "Failed technical interview", Count: 18},
		{Reason: "Location constraints", Count: 9},
		{Reason: "Candidate withdrew", Count: 6},
	}

	total := 0
	for _, r := range reasons {
		total += r.Count
	}
	return &models.RejectionReport{
		DateRange:       rng,
		TotalRejections: total,
		TopReasons:      reasons,
	}, nil
}
