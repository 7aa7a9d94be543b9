// internal/tools/store.go
package tools

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vendor-analytics-agent/internal/models"
)

// Store is the analytics data plane behind the five tools.
type Store interface {
	VendorSummary(ctx context.Context, vendorID string, rng models.DateRange) (*models.VendorSummary, error)
	CompareVendors(ctx context.Context, vendorA, vendorB string, rng models.DateRange) (*models.ComparisonResult, error)
	VendorTrend(ctx context.Context, vendorID string, weeks int) (*models.TrendResult, error)
	TopPerformers(ctx context.Context, limit int, rng models.DateRange) (*models.TopPerformersResult, error)
	RejectionAnalysis(ctx context.Context, rng models.DateRange) (*models.RejectionReport, error)
}

// PostgresStore aggregates over the candidate_shares table: one row per
// candidate profile a vendor shared, with interview, onboarding and
// rejection outcomes.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB, now func() time.Time) *PostgresStore {
	if now == nil {
		now = time.Now
	}
	return &PostgresStore{db: db, now: now}
}

const summaryQuery = `
SELECT COUNT(*) AS shared,
       COUNT(interview_date) AS interviewed,
       COUNT(onboarding_date) AS onboarded,
       COALESCE(AVG(onboarding_date - shared_date), 0) AS avg_days
FROM candidate_shares
WHERE vendor_id = $1 AND shared_date BETWEEN $2 AND $3`

func (s *PostgresStore) VendorSummary(ctx context.Context, vendorID string, rng models.DateRange) (*models.VendorSummary, error) {
	row := s.db.QueryRowContext(ctx, summaryQuery, vendorID, rng.Start, rng.End)

	out := &models.VendorSummary{VendorID: vendorID, DateRange: rng}
	var avgDays float64
	if err := row.Scan(&out.Shared, &out.Interviewed, &out.Onboarded, &avgDays); err != nil {
		return nil, fmt.Errorf("vendor summary for %s: %w", vendorID, err)
	}
	out.AvgDaysToOnboard = avgDays
	if out.Shared > 0 {
		out.JoinRatio = float64(out.Onboarded) / float64(out.Shared)
	}
	return out, nil
}

func (s *PostgresStore) CompareVendors(ctx context.Context, vendorA, vendorB string, rng models.DateRange) (*models.ComparisonResult, error) {
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

const trendQuery = `
SELECT EXTRACT(ISOYEAR FROM shared_date)::int AS year,
       EXTRACT(WEEK FROM shared_date)::int AS week,
       COUNT(*) AS shared,
       COUNT(interview_date) AS interviewed,
       COUNT(onboarding_date) AS onboarded
FROM candidate_shares
WHERE vendor_id = $1 AND shared_date >= $2
GROUP BY 1, 2
ORDER BY 1, 2`

func (s *PostgresStore) VendorTrend(ctx context.Context, vendorID string, weeks int) (*models.TrendResult, error) {
	cutoff := s.now().UTC().AddDate(0, 0, -7*weeks)

	rows, err := s.db.QueryContext(ctx, trendQuery, vendorID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("vendor trend for %s: %w", vendorID, err)
	}
	defer rows.Close()

	out := &models.TrendResult{VendorID: vendorID, Weeks: weeks}
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.Year, &p.Week, &p.Shared, &p.Interviewed, &p.Onboarded); err != nil {
			return nil, fmt.Errorf("vendor trend for %s: %w", vendorID, err)
		}
		out.Points = append(out.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vendor trend for %s: %w", vendorID, err)
	}
	return out, nil
}

const topPerformersQuery = `
SELECT vendor_id,
       COUNT(*) AS shared,
       COUNT(onboarding_date) AS onboarded
FROM candidate_shares
WHERE shared_date BETWEEN $1 AND $2
GROUP BY vendor_id
ORDER BY onboarded DESC, vendor_id
LIMIT $3`

func (s *PostgresStore) TopPerformers(ctx context.Context, limit int, rng models.DateRange) (*models.TopPerformersResult, error) {
	rows, err := s.db.QueryContext(ctx, topPerformersQuery, rng.Start, rng.End, limit)
	if err != nil {
		return nil, fmt.Errorf("top performers: %w", err)
	}
	defer rows.Close()

	out := &models.TopPerformersResult{DateRange: rng}
	rank := 0
	for rows.Next() {
		var r models.PerformerRow
		if err := rows.Scan(&r.VendorID, &r.Shared, &r.Onboarded); err != nil {
			return nil, fmt.Errorf("top performers: %w", err)
		}
		rank++
		r.Rank = rank
		if r.Shared > 0 {
			r.JoinRatio = float64(r.Onboarded) / float64(r.Shared)
		}
		out.Rows = append(out.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top performers: %w", err)
	}
	return out, nil
}

const rejectionTotalQuery = `
SELECT COUNT(*)
FROM candidate_shares
WHERE status = 'REJECTED' AND shared_date BETWEEN $1 AND $2`

const rejectionReasonsQuery = `
SELECT rejection_reason, COUNT(*) AS cnt
FROM candidate_shares
WHERE status = 'REJECTED' AND rejection_reason IS NOT NULL
  AND shared_date BETWEEN $1 AND $2
GROUP BY rejection_reason
ORDER BY cnt DESC, rejection_reason
LIMIT 5`

func (s *PostgresStore) RejectionAnalysis(ctx context.Context, rng models.DateRange) (*models.RejectionReport, error) {
	out := &models.RejectionReport{DateRange: rng}

	row := s.db.QueryRowContext(ctx, rejectionTotalQuery, rng.Start, rng.End)
	if err := row.Scan(&out.TotalRejections); err != nil {
		return nil, fmt.Errorf("rejection analysis: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, rejectionReasonsQuery, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("rejection analysis: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.RejectionReason
		if err := rows.Scan(&r.Reason, &r.Count); err != nil {
			return nil, fmt.Errorf("rejection analysis: %w", err)
		}
		out.TopReasons = append(out.TopReasons, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rejection analysis: %w", err)
	}
	return out, nil
}
