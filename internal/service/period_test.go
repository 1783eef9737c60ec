package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/service"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculatePayrollPeriod(t *testing.T) {
	// Mid-month reference: the window still anchors to the 1st.
	reference := date(2024, time.January, 15)

	tests := []struct {
		name    string
		cadence domain.PayPeriod
		start   time.Time
		end     time.Time
	}{
		{
			name:    "weekly",
			cadence: domain.PayPeriodWeekly,
			start:   date(2024, time.January, 1),
			end:     date(2024, time.January, 8),
		},
		{
			name:    "biweekly",
			cadence: domain.PayPeriodBiweekly,
			start:   date(2024, time.January, 1),
			end:     date(2024, time.January, 15),
		},
		{
			name:    "monthly",
			cadence: domain.PayPeriodMonthly,
			start:   date(2024, time.January, 1),
			end:     date(2024, time.January, 31),
		},
		{
			name:    "unrecognized cadence behaves as monthly",
			cadence: domain.PayPeriod("fortnightly"),
			start:   date(2024, time.January, 1),
			end:     date(2024, time.January, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period := service.CalculatePayrollPeriod(tt.cadence, reference)
			assert.True(t, period.Start.Equal(tt.start), "start: got %s", period.Start)
			assert.True(t, period.End.Equal(tt.end), "end: got %s", period.End)
		})
	}
}

func TestCalculatePayrollPeriod_MonthLengths(t *testing.T) {
	// February of a leap year
	period := service.CalculatePayrollPeriod(domain.PayPeriodMonthly, date(2024, time.February, 10))
	assert.True(t, period.End.Equal(date(2024, time.February, 29)), "got %s", period.End)

	// February of a non-leap year
	period = service.CalculatePayrollPeriod(domain.PayPeriodMonthly, date(2023, time.February, 10))
	assert.True(t, period.End.Equal(date(2023, time.February, 28)), "got %s", period.End)

	// 30-day month
	period = service.CalculatePayrollPeriod(domain.PayPeriodMonthly, date(2024, time.April, 30))
	assert.True(t, period.End.Equal(date(2024, time.April, 30)), "got %s", period.End)
}

func TestCalculatePayrollPeriod_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	reference := time.Date(2024, time.June, 20, 17, 45, 0, 0, loc)

	period := service.CalculatePayrollPeriod(domain.PayPeriodWeekly, reference)
	assert.Equal(t, loc, period.Start.Location())
	assert.Equal(t, 0, period.Start.Hour())
	assert.Equal(t, 1, period.Start.Day())
}
