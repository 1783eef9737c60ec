package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

// payrollColumns is the shared list of columns for payroll queries.
var payrollColumns = []string{
	"id", "employee_id", "period_start", "period_end", "base_salary",
	"commission_amount", "total_amount", "status", "payment_date",
	"created_at", "updated_at",
}

// PayrollRepository handles database operations for employee payroll records.
type PayrollRepository struct {
	pool *pgxpool.Pool
}

// NewPayrollRepository creates a new PayrollRepository.
func NewPayrollRepository(pool *pgxpool.Pool) *PayrollRepository {
	return &PayrollRepository{pool: pool}
}

func scanPayroll(row pgx.Row) (*domain.EmployeePayroll, error) {
	var p domain.EmployeePayroll
	err := row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.PeriodStart,
		&p.PeriodEnd,
		&p.BaseSalary,
		&p.CommissionAmount,
		&p.TotalAmount,
		&p.Status,
		&p.PaymentDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("scan payroll record: %w", err)
	}
	return &p, nil
}

// GetByID retrieves a payroll record by ID.
func (r *PayrollRepository) GetByID(ctx context.Context, payrollID string) (*domain.EmployeePayroll, error) {
	query, args, err := psql.
		Select(payrollColumns...).
		From("employee_payrolls").
		Where(sq.Eq{"id": payrollID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for payroll: %w", err)
	}

	return scanPayroll(r.pool.QueryRow(ctx, query, args...))
}

// GetForPeriodForUpdate retrieves the employee's record for the exact
// period with a FOR UPDATE lock, serializing concurrent payroll runs.
func (r *PayrollRepository) GetForPeriodForUpdate(
	ctx context.Context,
	tx pgx.Tx,
	employeeID string,
	start, end time.Time,
) (*domain.EmployeePayroll, error) {
	query, args, err := psql.
		Select(payrollColumns...).
		From("employee_payrolls").
		Where(sq.Eq{
			"employee_id":  employeeID,
			"period_start": start,
			"period_end":   end,
		}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetForPeriodForUpdate query: %w", err)
	}

	return scanPayroll(tx.QueryRow(ctx, query, args...))
}

// Create inserts a pending payroll record within a transaction.
func (r *PayrollRepository) Create(ctx context.Context, tx pgx.Tx, p *domain.EmployeePayroll) (*domain.EmployeePayroll, error) {
	if p.Status == "" {
		p.Status = domain.PayrollStatusPending
	}

	query, args, err := psql.
		Insert("employee_payrolls").
		Columns("employee_id", "period_start", "period_end", "base_salary",
			"commission_amount", "total_amount", "status").
		Values(p.EmployeeID, p.PeriodStart, p.PeriodEnd, p.BaseSalary,
			p.CommissionAmount, p.TotalAmount, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for payroll: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create payroll record: %w", err)
	}

	return p, nil
}

// UpdateAmounts re-aggregates a pending record's commission and total
// within the claiming transaction.
func (r *PayrollRepository) UpdateAmounts(
	ctx context.Context,
	tx pgx.Tx,
	payrollID string,
	commission decimal.Decimal,
	total decimal.Decimal,
) error {
	query, args, err := psql.
		Update("employee_payrolls").
		Set("commission_amount", commission).
		Set("total_amount", total).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     payrollID,
			"status": domain.PayrollStatusPending,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateAmounts query for payroll %s: %w", payrollID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payroll amounts: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPayrollFrozen
	}

	return nil
}

// UpdateStatus advances a payroll record with optimistic locking.
// paymentDate is only set when moving to paid.
func (r *PayrollRepository) UpdateStatus(
	ctx context.Context,
	payrollID string,
	oldStatus domain.PayrollStatus,
	newStatus domain.PayrollStatus,
	paymentDate *time.Time,
) error {
	qb := psql.
		Update("employee_payrolls").
		Set("status", newStatus).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     payrollID,
			"status": oldStatus,
		})

	if paymentDate != nil {
		qb = qb.Set("payment_date", *paymentDate)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateStatus query for payroll %s: %w", payrollID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payroll status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentUpdate
	}

	return nil
}

// List retrieves payroll records, optionally limited to one employee,
// newest period first.
func (r *PayrollRepository) List(ctx context.Context, employeeID *string) ([]*domain.EmployeePayroll, error) {
	qb := psql.
		Select(payrollColumns...).
		From("employee_payrolls").
		OrderBy("period_start DESC", "created_at DESC")

	if employeeID != nil {
		qb = qb.Where(sq.Eq{"employee_id": *employeeID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for payrolls: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payroll records: %w", err)
	}
	defer rows.Close()

	var records []*domain.EmployeePayroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}
