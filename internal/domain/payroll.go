package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriod is the configured payroll cadence. Values outside the three
// recognized strings fall back to monthly behavior.
type PayPeriod string

const (
	PayPeriodWeekly   PayPeriod = "1 week"
	PayPeriodBiweekly PayPeriod = "2 weeks"
	PayPeriodMonthly  PayPeriod = "1 month"
)

// IsValid checks if the cadence is one of the recognized values.
func (p PayPeriod) IsValid() bool {
	switch p {
	case PayPeriodWeekly, PayPeriodBiweekly, PayPeriodMonthly:
		return true
	default:
		return false
	}
}

// PayrollSettings is the singleton payroll configuration. Rates are
// percentages in the 0-100 range, not fractions.
type PayrollSettings struct {
	ID               string
	BaseSalary       decimal.Decimal
	CommissionRate   decimal.Decimal
	POCommissionRate decimal.Decimal
	PayPeriod        PayPeriod
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks salary and rate bounds.
func (s *PayrollSettings) Validate() error {
	if s.BaseSalary.IsNegative() {
		return ErrNegativeSalary
	}
	hundred := decimal.NewFromInt(100)
	if s.CommissionRate.IsNegative() || s.CommissionRate.GreaterThan(hundred) {
		return ErrInvalidRate
	}
	if s.POCommissionRate.IsNegative() || s.POCommissionRate.GreaterThan(hundred) {
		return ErrInvalidRate
	}
	if !s.PayPeriod.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// CommissionType classifies how a commission was earned.
type CommissionType string

const (
	CommissionTaskCompletion CommissionType = "task_completion"
	CommissionPOCompletion   CommissionType = "po_completion"
)

// CommissionRecord is an append-only ledger entry created when a task
// completes. PayrollID stays nil until a payroll run claims the record.
type CommissionRecord struct {
	ID         string
	EmployeeID string
	TaskID     string
	PayrollID  *string
	Amount     decimal.Decimal
	Type       CommissionType
	CreatedAt  time.Time
}

// PayrollStatus is the lifecycle of an employee payroll record.
type PayrollStatus string

const (
	PayrollStatusPending   PayrollStatus = "pending"
	PayrollStatusProcessed PayrollStatus = "processed"
	PayrollStatusPaid      PayrollStatus = "paid"
)

// IsValid checks if the status is one of the allowed values.
func (s PayrollStatus) IsValid() bool {
	switch s {
	case PayrollStatusPending, PayrollStatusProcessed, PayrollStatusPaid:
		return true
	default:
		return false
	}
}

// CanAdvanceTo reports whether the transition is the single legal forward
// step: pending -> processed -> paid.
func (s PayrollStatus) CanAdvanceTo(next PayrollStatus) bool {
	switch s {
	case PayrollStatusPending:
		return next == PayrollStatusProcessed
	case PayrollStatusProcessed:
		return next == PayrollStatusPaid
	default:
		return false
	}
}

// EmployeePayroll aggregates base salary and commissions for one employee
// over one pay period. BaseSalary is a snapshot taken when the record is
// created; the record is frozen once it leaves pending.
type EmployeePayroll struct {
	ID               string
	EmployeeID       string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	BaseSalary       decimal.Decimal
	CommissionAmount decimal.Decimal
	TotalAmount      decimal.Decimal
	Status           PayrollStatus
	PaymentDate      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsFrozen reports whether the record may no longer be re-aggregated.
func (p *EmployeePayroll) IsFrozen() bool {
	return p.Status != PayrollStatusPending
}
