// internal/models/intent.go
package models

// Intent identifies one of the five predefined analytics operations.
type Intent string

const (
	IntentVendorSummary     Intent = "VendorSummary"
	IntentTopPerformers     Intent = "TopPerformers"
	IntentCompare           Intent = "Compare"
	IntentTrend             Intent = "Trend"
	IntentRejectionAnalysis Intent = "RejectionAnalysis"
)

// ToolName maps an intent to the tool identifier used on the execution boundary.
func (i Intent) ToolName() string {
	switch i {
	case IntentVendorSummary:
		return "get_vendor_summary"
	case IntentTopPerformers:
		return "vendor_top_performers"
	case IntentCompare:
		return "compare_vendors"
	case IntentTrend:
		return "get_vendor_trend"
	case IntentRejectionAnalysis:
		return "vendor_failed_submissions"
	}
	return ""
}

// RequiredParams lists the parameter names an intent cannot execute without.
// Optional parameters (date ranges that fall back to a default window, counts
// defaulted during extraction) are not listed here.
func (i Intent) RequiredParams() []string {
	switch i {
	case IntentVendorSummary, IntentTrend:
		return []string{ParamVendorID}
	case IntentCompare:
		return []string{ParamVendorIDA, ParamVendorIDB}
	default:
		return nil
	}
}

// AcceptsDateRange reports whether the intent consumes a date range at all.
func (i Intent) AcceptsDateRange() bool {
	return i != IntentTrend
}
