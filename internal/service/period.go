package service

import (
	"time"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

// PayrollPeriod is a concrete date range derived from the configured cadence.
type PayrollPeriod struct {
	Start time.Time
	End   time.Time
}

// CalculatePayrollPeriod resolves the configured cadence against a reference
// date. The window always starts on the first day of the reference date's
// calendar month at local midnight; weekly and bi-weekly cadences are fixed
// sub-windows of that month counted from the 1st, not rolling windows from
// the reference date. Unrecognized cadences behave as monthly, ending on the
// last day of the month.
func CalculatePayrollPeriod(cadence domain.PayPeriod, reference time.Time) PayrollPeriod {
	start := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())

	var end time.Time
	switch cadence {
	case domain.PayPeriodWeekly:
		end = start.AddDate(0, 0, 7)
	case domain.PayPeriodBiweekly:
		end = start.AddDate(0, 0, 14)
	default:
		end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	}

	return PayrollPeriod{Start: start, End: end}
}
