// internal/models/records.go
package models

// VendorSummary aggregates one vendor's funnel over a date range.
type VendorSummary struct {
	VendorID         string    `json:"vendorId"`
	DateRange        DateRange `json:"dateRange"`
	Shared           int       `json:"shared"`
	Interviewed      int       `json:"interviewed"`
	Onboarded        int       `json:"onboarded"`
	JoinRatio        float64   `json:"joinRatio"`
	AvgDaysToOnboard float64   `json:"avgTimeToOnboarding"`
}

// ComparisonResult holds two summaries over the same window.
type ComparisonResult struct {
	VendorA VendorSummary `json:"vendorA"`
	VendorB VendorSummary `json:"vendorB"`
}

// TrendPoint is one ISO week bucket of a vendor's activity.
type TrendPoint struct {
	Year        int `json:"year"`
	Week        int `json:"week"`
	Shared      int `json:"shared"`
	Interviewed int `json:"interviewed"`
	Onboarded   int `json:"onboarded"`
}

// TrendResult is a vendor's weekly series, oldest first.
type TrendResult struct {
	VendorID string       `json:"vendorId"`
	Weeks    int          `json:"weeks"`
	Points   []TrendPoint `json:"points"`
}

// PerformerRow ranks one vendor on the leaderboard.
type PerformerRow struct {
	Rank      int     `json:"rank"`
	VendorID  string  `json:"vendorId"`
	Shared    int     `json:"shared"`
	Onboarded int     `json:"onboarded"`
	JoinRatio float64 `json:"joinRatio"`
}

// TopPerformersResult is the ranked leaderboard over a date range.
type TopPerformersResult struct {
	DateRange DateRange      `json:"dateRange"`
	Rows      []PerformerRow `json:"rows"`
}

// RejectionReason is one failure cause with its share of the total.
type RejectionReason struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// RejectionReport aggregates failed submissions over a date range.
type RejectionReport struct {
	DateRange       DateRange         `json:"dateRange"`
	TotalRejections int               `json:"totalRejections"`
	TopReasons      []RejectionReason `json:"topReasons"`
}
