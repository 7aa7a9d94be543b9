// internal/agent/extractor/extractor.go
package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"vendor-analytics-agent/internal/models"
)

var (
	vendorRe   = regexp.MustCompile(`(?i)vendor[_\s]?(\d+)`)
	limitRe    = regexp.MustCompile(`(?i)top\s+(\d+)`)
	weeksRe    = regexp.MustCompile(`(?i)(\d+)\s*weeks?`)
	yearSpanRe = regexp.MustCompile(`(?i)from\s+((?:19|20)\d{2})\s+to\s+((?:19|20)\d{2})`)
	yearRe     = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

// Config carries the per-intent defaults filled during extraction.
type Config struct {
	DefaultLimit int // TopPerformers leaderboard size
	DefaultWeeks int // Trend window
}

// Extractor pulls typed parameters out of free text. It is a pure function
// of (text, intent): no memory access, no side effects. The clock is
// injected so relative date phrases are testable.
type Extractor struct {
	cfg Config
	now func() time.Time
}

func New(cfg Config, now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{cfg: cfg, now: now}
}

// Extract resolves the parameters the query states explicitly, plus the
// per-intent defaults for counts. Vendor ids and date ranges that the text
// does not mention stay unset for memory backfill.
func (e *Extractor) Extract(query string, intent models.Intent) models.ParameterSet {
	lower := strings.ToLower(query)
	var params models.ParameterSet

	if intent == models.IntentCompare {
		params.VendorIDA, params.VendorIDB = extractVendorPair(lower)
	} else {
		if m := vendorRe.FindStringSubmatch(lower); m != nil {
			params.VendorID = "VENDOR_" + m[1]
		}
	}

	if m := limitRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			params.Limit = n
		}
	} else if intent == models.IntentTopPerformers {
		params.Limit = e.cfg.DefaultLimit
	}

	if m := weeksRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			params.LastNWeeks = n
		}
	} else if intent == models.IntentTrend {
		params.LastNWeeks = e.cfg.DefaultWeeks
	}

	params.DateRange = e.extractDateRange(lower)

	return params
}

// extractVendorPair binds the first two distinct vendor tokens to A and B.
// A single mention binds A only; B is left for the caller to reject, never
// guessed.
func extractVendorPair(lower string) (a, b string) {
	seen := map[string]bool{}
	for _, m := range vendorRe.FindAllStringSubmatch(lower, -1) {
		id := "VENDOR_" + m[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		if a == "" {
			a = id
		} else if b == "" {
			b = id
			break
		}
	}
	return a, b
}

func (e *Extractor) extractDateRange(lower string) *models.DateRange {
	if m := yearSpanRe.FindStringSubmatch(lower); m != nil {
		from, _ := strconv.Atoi(m[1])
		to, _ := strconv.Atoi(m[2])
		return &models.DateRange{
			Start: dayStart(from, time.January, 1),
			End:   dayStart(to, time.December, 31),
		}
	}

	now := e.now().UTC()

	if strings.Contains(lower, "this year") {
		return fullYear(now.Year())
	}

	// Preceding calendar month, not a trailing 30-day window.
	if strings.Contains(lower, "last month") {
		firstOfCurrent := dayStart(now.Year(), now.Month(), 1)
		lastOfPrevious := firstOfCurrent.AddDate(0, 0, -1)
		firstOfPrevious := dayStart(lastOfPrevious.Year(), lastOfPrevious.Month(), 1)
		return &models.DateRange{Start: firstOfPrevious, End: lastOfPrevious}
	}

	if strings.Contains(lower, "last week") {
		end := dayStart(now.Year(), now.Month(), now.Day())
		return &models.DateRange{Start: end.AddDate(0, 0, -7), End: end}
	}

	if m := yearRe.FindStringSubmatch(lower); m != nil {
		year, _ := strconv.Atoi(m[1])
		return fullYear(year)
	}

	return nil
}

func fullYear(year int) *models.DateRange {
	return &models.DateRange{
		Start: dayStart(year, time.January, 1),
		End:   dayStart(year, time.December, 31),
	}
}

func dayStart(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
