// internal/tools/registry_test.go
package tools

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vendor-analytics-agent/internal/common/errors"
	"vendor-analytics-agent/internal/common/logger"
	"vendor-analytics-agent/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
}

func testRange() models.DateRange {
	return models.DateRange{
		Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
}

func rangePtr() *models.DateRange {
	r := testRange()
	return &r
}

// failingStore forces the execution-error path for every tool.
type failingStore struct{}

func (failingStore) VendorSummary(context.Context, string, models.DateRange) (*models.VendorSummary, error) {
	return nil, fmt.Errorf("connection refused")
}
func (failingStore) CompareVendors(context.Context, string, string, models.DateRange) (*models.ComparisonResult, error) {
	return nil, fmt.Errorf("connection refused")
}
func (failingStore) VendorTrend(context.Context, string, int) (*models.TrendResult, error) {
	return nil, fmt.Errorf("connection refused")
}
func (failingStore) TopPerformers(context.Context, int, models.DateRange) (*models.TopPerformersResult, error) {
	return nil, fmt.Errorf("connection refused")
}
func (failingStore) RejectionAnalysis(context.Context, models.DateRange) (*models.RejectionReport, error) {
	return nil, fmt.Errorf("connection refused")
}

// ==========================
// Postgres Store Tests
// ==========================

func TestPostgresStore_VendorSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rng := testRange()
	rows := sqlmock.NewRows([]string{"shared", "interviewed", "onboarded", "avg_days"}).
		AddRow(50, 20, 10, 12.5)
	mock.ExpectQuery(`WHERE vendor_id = \$1 AND shared_date BETWEEN \$2 AND \$3`).
		WithArgs("VENDOR_1", rng.Start, rng.End).
		WillReturnRows(rows)

	store := NewPostgresStore(db, fixedNow)
	out, err := store.VendorSummary(context.Background(), "VENDOR_1", rng)

	require.NoError(t, err)
	assert.Equal(t, "VENDOR_1", out.VendorID)
	assert.Equal(t, 50, out.Shared)
	assert.Equal(t, 20, out.Interviewed)
	assert.Equal(t, 10, out.Onboarded)
	assert.InDelta(t, 0.2, out.JoinRatio, 1e-9)
	assert.InDelta(t, 12.5, out.AvgDaysToOnboard, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_VendorSummary_NoActivity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rng := testRange()
	rows := sqlmock.NewRows([]string{"shared", "interviewed", "onboarded", "avg_days"}).
		AddRow(0, 0, 0, 0.0)
	mock.ExpectQuery(`WHERE vendor_id = \$1 AND shared_date BETWEEN \$2 AND \$3`).
		WithArgs("VENDOR_99", rng.Start, rng.End).
		WillReturnRows(rows)

	store := NewPostgresStore(db, fixedNow)
	out, err := store.VendorSummary(context.Background(), "VENDOR_99", rng)

	require.NoError(t, err)
	assert.Zero(t, out.Shared)
	assert.Zero(t, out.JoinRatio)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_VendorTrend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := fixedNow().UTC().AddDate(0, 0, -7*8)
	rows := sqlmock.NewRows([]string{"year", "week", "shared", "interviewed", "onboarded"}).
		AddRow(2024, 17, 8, 4, 2).
		AddRow(2024, 18, 11, 5, 3)
	mock.ExpectQuery(`GROUP BY 1, 2`).
		WithArgs("VENDOR_2", cutoff).
		WillReturnRows(rows)

	store := NewPostgresStore(db, fixedNow)
	out, err := store.VendorTrend(context.Background(), "VENDOR_2", 8)

	require.NoError(t, err)
	assert.Equal(t, 8, out.Weeks)
	require.Len(t, out.Points, 2)
	assert.Equal(t, 17, out.Points[0].Week)
	assert.Equal(t, 11, out.Points[1].Shared)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_TopPerformers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rng := testRange()
	rows := sqlmock.NewRows([]string{"vendor_id", "shared", "onboarded"}).
		AddRow("VENDOR_3", 60, 24).
		AddRow("VENDOR_1", 50, 10)
	mock.ExpectQuery(`ORDER BY onboarded DESC, vendor_id`).
		WithArgs(rng.Start, rng.End, 2).
		WillReturnRows(rows)

	store := NewPostgresStore(db, fixedNow)
	out, err := store.TopPerformers(context.Background(), 2, rng)

	require.NoError(t, err)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, 1, out.Rows[0].Rank)
	assert.Equal(t, "VENDOR_3", out.Rows[0].VendorID)
	assert.InDelta(t, 0.4, out.Rows[0].JoinRatio, 1e-9)
	assert.Equal(t, 2, out.Rows[1].Rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RejectionAnalysis(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rng := testRange()
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(rng.Start, rng.End).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	reasonRows := sqlmock.NewRows([]string{"rejection_reason", "cnt"}).
		AddRow("Skills mismatch", 20).
		AddRow("Failed technical interview", 12)
	mock.ExpectQuery(`GROUP BY rejection_reason`).
		WithArgs(rng.Start, rng.End).
		WillReturnRows(reasonRows)

	store := NewPostgresStore(db, fixedNow)
	out, err := store.RejectionAnalysis(context.Background(), rng)

	require.NoError(t, err)
	assert.Equal(t, 42, out.TotalRejections)
	require.Len(t, out.TopReasons, 2)
	assert.Equal(t, "Skills mismatch", out.TopReasons[0].Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rng := testRange()
	mock.ExpectQuery(`WHERE vendor_id = \$1`).
		WithArgs("VENDOR_1", rng.Start, rng.End).
		WillReturnError(fmt.Errorf("relation does not exist"))

	store := NewPostgresStore(db, fixedNow)
	out, err := store.VendorSummary(context.Background(), "VENDOR_1", rng)

	assert.Nil(t, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation does not exist")
}

// ==========================
// Registry Tests
// ==========================

func TestRegistry_Execute_Success(t *testing.T) {
	tests := []struct {
		name     string
		intent   models.Intent
		params   models.ParameterSet
		validate func(t *testing.T, result interface{})
	}{
		{
			name:   "vendor summary",
			intent: models.IntentVendorSummary,
			params: models.ParameterSet{VendorID: "VENDOR_1", DateRange: rangePtr()},
			validate: func(t *testing.T, result interface{}) {
				out, ok := result.(*models.VendorSummary)
				require.True(t, ok)
				assert.Equal(t, "VENDOR_1", out.VendorID)
				assert.Positive(t, out.Shared)
			},
		},
		{
			name:   "compare",
			intent: models.IntentCompare,
			params: models.ParameterSet{VendorIDA: "VENDOR_1", VendorIDB: "VENDOR_2", DateRange: rangePtr()},
			validate: func(t *testing.T, result interface{}) {
				out, ok := result.(*models.ComparisonResult)
				require.True(t, ok)
				assert.Equal(t, "VENDOR_1", out.VendorA.VendorID)
				assert.Equal(t, "VENDOR_2", out.VendorB.VendorID)
			},
		},
		{
			name:   "trend",
			intent: models.IntentTrend,
			params: models.ParameterSet{VendorID: "VENDOR_3", LastNWeeks: 6},
			validate: func(t *testing.T, result interface{}) {
				out, ok := result.(*models.TrendResult)
				require.True(t, ok)
				assert.Len(t, out.Points, 6)
			},
		},
		{
			name:   "top performers",
			intent: models.IntentTopPerformers,
			params: models.ParameterSet{Limit: 3, DateRange: rangePtr()},
			validate: func(t *testing.T, result interface{}) {
				out, ok := result.(*models.TopPerformersResult)
				require.True(t, ok)
				require.Len(t, out.Rows, 3)
				assert.GreaterOrEqual(t, out.Rows[0].Onboarded, out.Rows[1].Onboarded)
			},
		},
		{
			name:   "rejection analysis",
			intent: models.IntentRejectionAnalysis,
			params: models.ParameterSet{DateRange: rangePtr()},
			validate: func(t *testing.T, result interface{}) {
				out, ok := result.(*models.RejectionReport)
				require.True(t, ok)
				assert.Positive(t, out.TotalRejections)
				assert.NotEmpty(t, out.TopReasons)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(NewMockStore(fixedNow), logger.NewTestLogger(t))

			result, err := reg.Execute(context.Background(), tt.intent, tt.params)

			require.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestRegistry_Execute_StoreFailure(t *testing.T) {
	reg := NewRegistry(failingStore{}, logger.NewNoOpLogger())

	result, err := reg.Execute(context.Background(), models.IntentVendorSummary, models.ParameterSet{
		VendorID:  "VENDOR_1",
		DateRange: rangePtr(),
	})

	assert.Nil(t, result)
	require.Error(t, err)
	qe, ok := errors.AsQueryError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeExecutionError, qe.Code)
	assert.Contains(t, qe.Details, "connection refused")
}

func TestRegistry_Execute_SchemaViolation(t *testing.T) {
	reg := NewRegistry(NewMockStore(fixedNow), logger.NewNoOpLogger())

	// A summary without a date range can only mean a pipeline bug; the
	// boundary refuses it instead of passing it to the store.
	result, err := reg.Execute(context.Background(), models.IntentVendorSummary, models.ParameterSet{
		VendorID: "VENDOR_1",
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeExecutionError, errors.CodeOf(err))
}

func TestRegistry_ToolNames(t *testing.T) {
	reg := NewRegistry(NewMockStore(fixedNow), logger.NewNoOpLogger())

	assert.Equal(t, "get_vendor_summary", reg.ToolName(models.IntentVendorSummary))
	assert.Equal(t, "compare_vendors", reg.ToolName(models.IntentCompare))
	assert.Equal(t, "get_vendor_trend", reg.ToolName(models.IntentTrend))
	assert.Equal(t, "vendor_top_performers", reg.ToolName(models.IntentTopPerformers))
	assert.Equal(t, "vendor_failed_submissions", reg.ToolName(models.IntentRejectionAnalysis))
}
