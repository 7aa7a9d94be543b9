// internal/models/params.go
package models

import "time"

// Canonical parameter names as they appear on the tool boundary and in
// decision traces.
const (
	ParamVendorID   = "vendorId"
	ParamVendorIDA  = "vendorIdA"
	ParamVendorIDB  = "vendorIdB"
	ParamDateRange  = "dateRange"
	ParamLastNWeeks = "lastNWeeks"
	ParamLimit      = "limit"
)

// DateRange is an inclusive calendar window. Dates carry day precision.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SpanDays returns the inclusive number of days covered by the range.
func (r DateRange) SpanDays() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
}

// ParameterSet holds the resolved arguments of a single query. Zero values
// mean unset: empty vendor strings, nil DateRange, zero counts.
type ParameterSet struct {
	VendorID   string     `json:"vendorId,omitempty"`
	VendorIDA  string     `json:"vendorIdA,omitempty"`
	VendorIDB  string     `json:"vendorIdB,omitempty"`
	DateRange  *DateRange `json:"dateRange,omitempty"`
	LastNWeeks int        `json:"lastNWeeks,omitempty"`
	Limit      int        `json:"limit,omitempty"`
}

// Clone returns an independent copy, including the date range.
func (p ParameterSet) Clone() ParameterSet {
	out := p
	if p.DateRange != nil {
		r := *p.DateRange
		out.DateRange = &r
	}
	return out
}

// ToMap renders the set fields as a generic map for schema validation and
// trace snapshots. Unset fields are omitted.
func (p ParameterSet) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	if p.VendorID != "" {
		m[ParamVendorID] = p.VendorID
	}
	if p.VendorIDA != "" {
		m[ParamVendorIDA] = p.VendorIDA
	}
	if p.VendorIDB != "" {
		m[ParamVendorIDB] = p.VendorIDB
	}
	if p.DateRange != nil {
		m[ParamDateRange] = map[string]interface{}{
			"start": p.DateRange.Start.Format("2006-01-02"),
			"end":   p.DateRange.End.Format("2006-01-02"),
		}
	}
	if p.LastNWeeks != 0 {
		m[ParamLastNWeeks] = p.LastNWeeks
	}
	if p.Limit != 0 {
		m[ParamLimit] = p.Limit
	}
	return m
}
