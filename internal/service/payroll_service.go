package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Luciferhub44/clean-emp/internal/domain"
	"github.com/Luciferhub44/clean-emp/internal/repository"
)

// PayrollService orchestrates period aggregation and the payroll record
// lifecycle.
type PayrollService struct {
	pool           *pgxpool.Pool
	payrollRepo    *repository.PayrollRepository
	commissionRepo *repository.CommissionRepository
	settingsRepo   *repository.SettingsRepository
	employeeRepo   *repository.EmployeeRepository
	notifier       *Notifier
	validator      *Validator

	// now is swappable for tests.
	now func() time.Time
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(
	pool *pgxpool.Pool,
	payrollRepo *repository.PayrollRepository,
	commissionRepo *repository.CommissionRepository,
	settingsRepo *repository.SettingsRepository,
	employeeRepo *repository.EmployeeRepository,
	notifier *Notifier,
) *PayrollService {
	return &PayrollService{
		pool:           pool,
		payrollRepo:    payrollRepo,
		commissionRepo: commissionRepo,
		settingsRepo:   settingsRepo,
		employeeRepo:   employeeRepo,
		notifier:       notifier,
		validator:      NewValidator(),
		now:            time.Now,
	}
}

// GetSettings reads the payroll configuration singleton.
func (s *PayrollService) GetSettings(ctx context.Context) (*domain.PayrollSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings validates and writes the payroll configuration singleton.
// Already-persisted commission and payroll records keep their snapshots.
func (s *PayrollService) UpdateSettings(ctx context.Context, settings *domain.PayrollSettings) (*domain.PayrollSettings, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		return nil, err
	}

	slog.Info("payroll settings updated",
		"base_salary", updated.BaseSalary,
		"commission_rate", updated.CommissionRate,
		"po_commission_rate", updated.POCommissionRate,
		"pay_period", updated.PayPeriod,
	)

	return updated, nil
}

// ProcessPeriod aggregates the employee's unclaimed commissions for the
// current pay period into a pending payroll record. Claiming the records
// and recomputing the sums happen in one transaction, so re-runs are
// idempotent and concurrent runs serialize on the period row. A period
// whose record has already been processed or paid is rejected with
// ErrPayrollFrozen.
func (s *PayrollService) ProcessPeriod(ctx context.Context, employeeID string) (*domain.EmployeePayroll, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	period := CalculatePayrollPeriod(settings.PayPeriod, s.now())

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	payroll, err := s.payrollRepo.GetForPeriodForUpdate(ctx, tx, employeeID, period.Start, period.End)
	switch {
	case errors.Is(err, domain.ErrPayrollNotFound):
		payroll, err = s.payrollRepo.Create(ctx, tx, &domain.EmployeePayroll{
			EmployeeID:  employeeID,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
			BaseSalary:  settings.BaseSalary,
			TotalAmount: settings.BaseSalary,
			Status:      domain.PayrollStatusPending,
		})
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case payroll.IsFrozen():
		return nil, fmt.Errorf("%w: payroll %s is %s", domain.ErrPayrollFrozen, payroll.ID, payroll.Status)
	}

	claimed, err := s.commissionRepo.ClaimForPayroll(ctx, tx, employeeID, payroll.ID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	commission, err := s.commissionRepo.SumClaimed(ctx, tx, payroll.ID)
	if err != nil {
		return nil, err
	}

	total := payroll.BaseSalary.Add(commission)
	if err := s.payrollRepo.UpdateAmounts(ctx, tx, payroll.ID, commission, total); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	payroll.CommissionAmount = commission
	payroll.TotalAmount = total

	slog.Info("payroll period processed",
		"payroll_id", payroll.ID,
		"employee_id", employeeID,
		"period_start", period.Start,
		"period_end", period.End,
		"claimed_records", claimed,
		"commission_amount", commission,
	)

	return payroll, nil
}

// ProcessAll runs ProcessPeriod for every active employee. Frozen periods
// are skipped; other failures are collected and reported together.
func (s *PayrollService) ProcessAll(ctx context.Context) (int, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active employees: %w", err)
	}

	count := 0
	var errs []error
	for _, emp := range employees {
		if _, err := s.ProcessPeriod(ctx, emp.ID); err != nil {
			if errors.Is(err, domain.ErrPayrollFrozen) {
				slog.Info("skipping frozen payroll period", "employee_id", emp.ID)
				continue
			}
			slog.Error("failed to process payroll period",
				"employee_id", emp.ID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("employee %s: %w", emp.ID, err))
			continue
		}
		count++
	}

	if len(errs) > 0 {
		return count, fmt.Errorf("processed %d/%d employees, %d failures: %v",
			count, len(employees), len(errs), errs)
	}

	return count, nil
}

// AdvanceStatus moves a payroll record one step forward:
// pending -> processed -> paid. Paid stamps the payment date; processed
// queues the payroll statement notification.
func (s *PayrollService) AdvanceStatus(
	ctx context.Context,
	payrollID string,
	newStatus domain.PayrollStatus,
) (*domain.EmployeePayroll, error) {
	payroll, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanAdvancePayroll(payroll, newStatus); err != nil {
		return nil, err
	}

	var paymentDate *time.Time
	if newStatus == domain.PayrollStatusPaid {
		now := s.now()
		paymentDate = &now
	}

	if err := s.payrollRepo.UpdateStatus(ctx, payrollID, payroll.Status, newStatus, paymentDate); err != nil {
		return nil, err
	}

	oldStatus := payroll.Status
	payroll.Status = newStatus
	payroll.PaymentDate = paymentDate

	slog.Info("payroll status advanced",
		"payroll_id", payrollID,
		"old_status", oldStatus,
		"new_status", newStatus,
	)

	if newStatus == domain.PayrollStatusProcessed {
		if employee, err := s.employeeRepo.GetByID(ctx, payroll.EmployeeID); err == nil {
			s.notifier.PayrollProcessed(ctx, employee, payroll)
		} else {
			slog.Error("failed to load employee for payroll notification",
				"payroll_id", payrollID, "error", err)
		}
	}

	return payroll, nil
}

// ListRecords retrieves payroll records, optionally for one employee.
func (s *PayrollService) ListRecords(ctx context.Context, employeeID *string) ([]*domain.EmployeePayroll, error) {
	return s.payrollRepo.List(ctx, employeeID)
}

// ListCommissions retrieves the ledger, for one employee or all.
func (s *PayrollService) ListCommissions(ctx context.Context, employeeID *string) ([]*domain.CommissionRecord, error) {
	if employeeID != nil {
		return s.commissionRepo.ListByEmployee(ctx, *employeeID)
	}
	return s.commissionRepo.ListAll(ctx)
}

// GetCommissionSummary returns the aggregate projection for one employee.
func (s *PayrollService) GetCommissionSummary(ctx context.Context, employeeID string) (*repository.CommissionSummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.commissionRepo.GetSummary(ctx, employeeID)
}

// GetPOSummary returns the purchase-order commission projection for one employee.
func (s *PayrollService) GetPOSummary(ctx context.Context, employeeID string) (*repository.POSummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.commissionRepo.GetPOSummary(ctx, employeeID)
}
