// internal/agent/validator/validator.go
package validator

import (
	"fmt"
	"regexp"
	"time"

	"vendor-analytics-agent/internal/common/errors"
	"vendor-analytics-agent/internal/models"
)

const (
	maxRangeDays = 366
	minLimit     = 1
	maxLimit     = 100
	minWeeks     = 1
	maxWeeks     = 52
)

var vendorIDRe = regexp.MustCompile(`^VENDOR_[1-9]\d*$`)

// Config carries the substitution window for absent date ranges.
type Config struct {
	DefaultRangeDays int
}

// Validator checks a backfilled parameter set against the declared intent.
// It is a pure function of (intent, params): it never consults memory, and
// the clock is injected so the default window is testable.
type Validator struct {
	cfg Config
	now func() time.Time
}

func New(cfg Config, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{cfg: cfg, now: now}
}

// Validate returns the normalized parameter set for the intent or the first
// violation as a structured error. Fields are checked in the intent's
// declared order, so a missing vendor is reported before a bad date range.
// Only the fields the intent consumes survive normalization.
func (v *Validator) Validate(intent models.Intent, params models.ParameterSet) (models.ParameterSet, error) {
	// Required vendor fields first, in the intent's declared order.
	for _, field := range intent.RequiredParams() {
		if err := checkVendor(field, vendorValue(params, field)); err != nil {
			return models.ParameterSet{}, err
		}
	}

	switch intent {
	case models.IntentVendorSummary:
		rng, err := v.checkDateRange(params.DateRange)
		if err != nil {
			return models.ParameterSet{}, err
		}
		return models.ParameterSet{VendorID: params.VendorID, DateRange: rng}, nil

	case models.IntentCompare:
		rng, err := v.checkDateRange(params.DateRange)
		if err != nil {
			return models.ParameterSet{}, err
		}
		return models.ParameterSet{
			VendorIDA: params.VendorIDA,
			VendorIDB: params.VendorIDB,
			DateRange: rng,
		}, nil

	case models.IntentTrend:
		if params.LastNWeeks < minWeeks || params.LastNWeeks > maxWeeks {
			return models.ParameterSet{}, errors.NewInvalidWeekWindowError(params.LastNWeeks)
		}
		return models.ParameterSet{VendorID: params.VendorID, LastNWeeks: params.LastNWeeks}, nil

	case models.IntentTopPerformers:
		if params.Limit < minLimit || params.Limit > maxLimit {
			return models.ParameterSet{}, errors.NewInvalidLimitError(params.Limit)
		}
		rng, err := v.checkDateRange(params.DateRange)
		if err != nil {
			return models.ParameterSet{}, err
		}
		return models.ParameterSet{Limit: params.Limit, DateRange: rng}, nil

	case models.IntentRejectionAnalysis:
		rng, err := v.checkDateRange(params.DateRange)
		if err != nil {
			return models.ParameterSet{}, err
		}
		return models.ParameterSet{DateRange: rng}, nil
	}

	return models.ParameterSet{}, errors.NewUnknownIntentError(string(intent))
}

func vendorValue(params models.ParameterSet, field string) string {
	switch field {
	case models.ParamVendorIDA:
		return params.VendorIDA
	case models.ParamVendorIDB:
		return params.VendorIDB
	default:
		return params.VendorID
	}
}

func checkVendor(field, value string) error {
	if value == "" {
		return errors.NewMissingVendorError(field)
	}
	if !vendorIDRe.MatchString(value) {
		return errors.NewInvalidVendorFormatError(field, value)
	}
	return nil
}

// checkDateRange validates a stated range or substitutes the rolling default
// window when none was given.
func (v *Validator) checkDateRange(rng *models.DateRange) (*models.DateRange, error) {
	if rng == nil {
		now := v.now().UTC()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return &models.DateRange{
			Start: end.AddDate(0, 0, -v.cfg.DefaultRangeDays),
			End:   end,
		}, nil
	}

	if rng.End.Before(rng.Start) {
		return nil, errors.NewInvalidDateRangeError(
			fmt.Sprintf("start %s is after end %s", rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02")))
	}

	days := int(rng.End.Sub(rng.Start).Hours() / 24)
	if days > maxRangeDays {
		return nil, errors.NewInvalidDateRangeError(
			fmt.Sprintf("span of %d days exceeds the 1 year limit", days))
	}

	out := *rng
	return &out, nil
}
