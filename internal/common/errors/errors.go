// Package errors provides structured error values for the query pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Error Codes
// ==========================

// ErrorCode represents standardized pipeline error codes.
type ErrorCode string

const (
	ErrCodeUnknownIntent       ErrorCode = "UNKNOWN_INTENT"
	ErrCodeMissingVendor       ErrorCode = "MISSING_VENDOR"
	ErrCodeInvalidVendorFormat ErrorCode = "INVALID_VENDOR_FORMAT"
	ErrCodeInvalidDateRange    ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidLimit        ErrorCode = "INVALID_LIMIT"
	ErrCodeInvalidWeekWindow   ErrorCode = "INVALID_WEEK_WINDOW"
	ErrCodeExecutionError      ErrorCode = "EXECUTION_ERROR"
)

// QueryError represents a structured pipeline error. Field names the
// offending parameter when there is one, and Suggestion tells the user how
// to fix the query.
type QueryError struct {
	Code       ErrorCode `json:"code"`
	Field      string    `json:"field,omitempty"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("QueryError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnknownIntentError signals that no catalog pattern cleared the
// confidence floor.
func NewUnknownIntentError(query string) *QueryError {
	return &QueryError{
		Code:       ErrCodeUnknownIntent,
		Message:    "Could not determine what you are asking for",
		Suggestion: "Try asking for a vendor summary, a comparison, a weekly trend, top performers, or a rejection analysis",
		Details:    fmt.Sprintf("query: %q", query),
		Timestamp:  time.Now().UTC(),
	}
}

// NewMissingVendorError signals a required vendor id that neither the query
// nor session memory could supply.
func NewMissingVendorError(field string) *QueryError {
	return &QueryError{
		Code:       ErrCodeMissingVendor,
		Field:      field,
		Message:    "VendorId is required",
		Suggestion: "Please specify a vendor or run a query with a vendor first",
		Timestamp:  time.Now().UTC(),
	}
}

// NewInvalidVendorFormatError signals a vendor id that does not follow the
// VENDOR_<number> convention.
func NewInvalidVendorFormatError(field, value string) *QueryError {
	return &QueryError{
		Code:       ErrCodeInvalidVendorFormat,
		Field:      field,
		Message:    fmt.Sprintf("Invalid vendor id %q", value),
		Suggestion: "Vendor ids look like VENDOR_1, VENDOR_42",
		Timestamp:  time.Now().UTC(),
	}
}

// NewInvalidDateRangeError signals an inverted or oversized date range.
func NewInvalidDateRangeError(details string) *QueryError {
	return &QueryError{
		Code:       ErrCodeInvalidDateRange,
		Field:      "dateRange",
		Message:    "Invalid date range",
		Suggestion: "Use a window of at most one year with the start before the end",
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}
}

// NewInvalidLimitError signals a leaderboard size outside [1, 100].
func NewInvalidLimitError(limit int) *QueryError {
	return &QueryError{
		Code:       ErrCodeInvalidLimit,
		Field:      "limit",
		Message:    fmt.Sprintf("Limit %d is out of range", limit),
		Suggestion: "Limit must be between 1 and 100",
		Timestamp:  time.Now().UTC(),
	}
}

// NewInvalidWeekWindowError signals a trend window outside [1, 52].
func NewInvalidWeekWindowError(weeks int) *QueryError {
	return &QueryError{
		Code:       ErrCodeInvalidWeekWindow,
		Field:      "lastNWeeks",
		Message:    fmt.Sprintf("LastNWeeks %d is out of range", weeks),
		Suggestion: "LastNWeeks cannot exceed 52 (1 year) and must be at least 1",
		Timestamp:  time.Now().UTC(),
	}
}

// NewExecutionError wraps a data-layer failure. The underlying message is
// passed through untouched.
func NewExecutionError(tool string, err error) *QueryError {
	return &QueryError{
		Code:      ErrCodeExecutionError,
		Message:   "Tool execution failed",
		Details:   fmt.Sprintf("tool: %s, error: %s", tool, err.Error()),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsQueryError unwraps err to a *QueryError if there is one in the chain.
func AsQueryError(err error) (*QueryError, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}

// CodeOf returns the code of err, or empty when err is not a QueryError.
func CodeOf(err error) ErrorCode {
	if qe, ok := AsQueryError(err); ok {
		return qe.Code
	}
	return ""
}

// IsValidationError reports whether the code rejects user input rather than
// signalling an infrastructure failure.
func IsValidationError(code ErrorCode) bool {
	switch code {
	case ErrCodeMissingVendor,
		ErrCodeInvalidVendorFormat,
		ErrCodeInvalidDateRange,
		ErrCodeInvalidLimit,
		ErrCodeInvalidWeekWindow:
		return true
	default:
		return false
	}
}
