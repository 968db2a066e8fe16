package types

import (
	"errors"
	"fmt"
	"strings"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrMissingArgument is returned before any HTTP call when a required value is empty.
var ErrMissingArgument = errors.New("missing required argument")

// PeriodPresets are the preset names Dixa accepts in a metrics period filter.
var PeriodPresets = []string{
	"PreviousQuarter",
	"ThisWeek",
	"PreviousWeek",
	"Yesterday",
	"Today",
	"ThisMonth",
	"PreviousMonth",
	"ThisQuarter",
	"ThisYear",
}

// RequireValue rejects empty or whitespace-only values.
func RequireValue(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return nil
}

// ValidateMetricsDataRequest checks the fields Dixa requires for a metrics query.
func ValidateMetricsDataRequest(req MetricsDataRequest) error {
	if err := RequireValue("metric id", req.MetricID); err != nil {
		return err
	}
	if err := RequireValue("timezone", req.Timezone); err != nil {
		return err
	}
	if len(req.PeriodFilter) == 0 {
		return fmt.Errorf("%w: period filter", ErrMissingArgument)
	}
	if len(req.Aggregations) == 0 {
		return fmt.Errorf("%w: aggregations", ErrMissingArgument)
	}
	return nil
}

// ValidateRecordsDataRequest checks the fields Dixa requires for a records query.
func ValidateRecordsDataRequest(req RecordsDataRequest) error {
	if err := RequireValue("record id", req.RecordID); err != nil {
		return err
	}
	if err := RequireValue("timezone", req.Timezone); err != nil {
		return err
	}
	if len(req.PeriodFilter) == 0 {
		return fmt.Errorf("%w: period filter", ErrMissingArgument)
	}
	return nil
}
