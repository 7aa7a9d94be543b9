// internal/agent/memory/memory.go
package memory

import (
	"sync"

	"vendor-analytics-agent/internal/models"
)

// Snapshot is the persisted shape of a session's context. One slot per
// field, no history.
type Snapshot struct {
	VendorID   string            `json:"vendorId,omitempty"`
	DateRange  *models.DateRange `json:"dateRange,omitempty"`
	LastNWeeks int               `json:"lastNWeeks,omitempty"`
}

// Memory holds the short-term context of one conversation session. It is
// empty at session start and only ever written after a query has executed
// successfully.
type Memory struct {
	mu   sync.Mutex
	slot Snapshot
}

func New() *Memory {
	return &Memory{}
}

// NewFromSnapshot restores a persisted session.
func NewFromSnapshot(s Snapshot) *Memory {
	m := &Memory{slot: s}
	if s.DateRange != nil {
		r := *s.DateRange
		m.slot.DateRange = &r
	}
	return m
}

// Backfill copies stored values into the missing fields the intent needs and
// reports which field names were used. The stored vendorId feeds both
// vendorId and vendorIdA; vendorIdB is never backfilled, a comparison always
// has to name its second vendor. The date range backfills every intent that
// accepts one.
func (m *Memory) Backfill(intent models.Intent, params models.ParameterSet) (models.ParameterSet, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := params.Clone()
	var used []string

	switch intent {
	case models.IntentVendorSummary, models.IntentTrend:
		if out.VendorID == "" && m.slot.VendorID != "" {
			out.VendorID = m.slot.VendorID
			used = append(used, models.ParamVendorID)
		}
	case models.IntentCompare:
		if out.VendorIDA == "" && m.slot.VendorID != "" {
			out.VendorIDA = m.slot.VendorID
			used = append(used, models.ParamVendorIDA)
		}
	}

	if !intent.AcceptsDateRange() {
		if out.LastNWeeks == 0 && m.slot.LastNWeeks != 0 {
			out.LastNWeeks = m.slot.LastNWeeks
			used = append(used, models.ParamLastNWeeks)
		}
		return out, used
	}

	if out.DateRange == nil && m.slot.DateRange != nil {
		r := *m.slot.DateRange
		out.DateRange = &r
		used = append(used, models.ParamDateRange)
	}

	return out, used
}

// Update overwrites the stored context with the just-executed parameters.
// Only fields present in the new query are written, so an absent field keeps
// its previous value. Compare queries store their first vendor.
func (m *Memory) Update(params models.ParameterSet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if params.VendorID != "" {
		m.slot.VendorID = params.VendorID
	} else if params.VendorIDA != "" {
		m.slot.VendorID = params.VendorIDA
	}
	if params.DateRange != nil {
		r := *params.DateRange
		m.slot.DateRange = &r
	}
	if params.LastNWeeks != 0 {
		m.slot.LastNWeeks = params.LastNWeeks
	}
}

// Reset clears the session context.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot = Snapshot{}
}

// Snapshot returns a copy of the current context for persistence or debug
// output.
func (m *Memory) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.slot
	if m.slot.DateRange != nil {
		r := *m.slot.DateRange
		out.DateRange = &r
	}
	return out
}
