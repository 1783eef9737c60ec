package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

// commissionColumns is the shared list of columns for commission queries.
var commissionColumns = []string{
	"id", "employee_id", "task_id", "payroll_id", "amount", "commission_type", "created_at",
}

// CommissionRepository handles the append-only commission ledger.
type CommissionRepository struct {
	pool *pgxpool.Pool
}

// NewCommissionRepository creates a new CommissionRepository.
func NewCommissionRepository(pool *pgxpool.Pool) *CommissionRepository {
	return &CommissionRepository{pool: pool}
}

func scanCommission(row pgx.Row) (*domain.CommissionRecord, error) {
	var rec domain.CommissionRecord
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.TaskID,
		&rec.PayrollID,
		&rec.Amount,
		&rec.Type,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan commission record: %w", err)
	}
	return &rec, nil
}

// Create inserts a ledger entry within a transaction. Records are
// immutable once created; there is no update method.
func (r *CommissionRepository) Create(ctx context.Context, tx pgx.Tx, rec *domain.CommissionRecord) error {
	query, args, err := psql.
		Insert("commission_records").
		Columns("employee_id", "task_id", "payroll_id", "amount", "commission_type").
		Values(rec.EmployeeID, rec.TaskID, rec.PayrollID, rec.Amount, rec.Type).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for commission record: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("create commission record: %w", err)
	}

	return nil
}

// ListByEmployee retrieves all ledger entries for one employee, newest first.
func (r *CommissionRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.CommissionRecord, error) {
	return r.list(ctx, psql.
		Select(commissionColumns...).
		From("commission_records").
		Where(sq.Eq{"employee_id": employeeID}).
		OrderBy("created_at DESC"))
}

// ListAll retrieves the full ledger, newest first.
func (r *CommissionRepository) ListAll(ctx context.Context) ([]*domain.CommissionRecord, error) {
	return r.list(ctx, psql.
		Select(commissionColumns...).
		From("commission_records").
		OrderBy("created_at DESC"))
}

func (r *CommissionRepository) list(ctx context.Context, qb sq.SelectBuilder) ([]*domain.CommissionRecord, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build commission list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query commission records: %w", err)
	}
	defer rows.Close()

	var records []*domain.CommissionRecord
	for rows.Next() {
		rec, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

// SumForPeriod totals an employee's commissions created in [start, end),
// claimed or not. Used for the running total reported on task completion.
func (r *CommissionRepository) SumForPeriod(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	query, args, err := psql.
		Select("COALESCE(SUM(amount), 0)").
		From("commission_records").
		Where(sq.Eq{"employee_id": employeeID}).
		Where(sq.GtOrEq{"created_at": start}).
		Where(sq.Lt{"created_at": end}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build SumForPeriod query: %w", err)
	}

	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum commissions: %w", err)
	}
	return sum, nil
}

// ClaimForPayroll links all of the employee's unclaimed records created in
// [start, end) to the payroll within the transaction. Claiming and summing
// happen on the same rows under the same lock, so a concurrent payroll run
// for the same period either serializes behind this one or finds an empty
// unclaimed set.
func (r *CommissionRepository) ClaimForPayroll(
	ctx context.Context,
	tx pgx.Tx,
	employeeID string,
	payrollID string,
	start, end time.Time,
) (int, error) {
	query, args, err := psql.
		Update("commission_records").
		Set("payroll_id", payrollID).
		Where(sq.Eq{"employee_id": employeeID, "payroll_id": nil}).
		Where(sq.GtOrEq{"created_at": start}).
		Where(sq.Lt{"created_at": end}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build ClaimForPayroll query: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("claim commission records: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// SumClaimed totals the records already linked to a payroll, within the
// claiming transaction.
func (r *CommissionRepository) SumClaimed(ctx context.Context, tx pgx.Tx, payrollID string) (decimal.Decimal, error) {
	query, args, err := psql.
		Select("COALESCE(SUM(amount), 0)").
		From("commission_records").
		Where(sq.Eq{"payroll_id": payrollID}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build SumClaimed query: %w", err)
	}

	var sum decimal.Decimal
	if err := tx.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum claimed commissions: %w", err)
	}
	return sum, nil
}

// CommissionSummary is the aggregate projection over one employee's ledger.
type CommissionSummary struct {
	TotalAmount     decimal.Decimal
	TotalCount      int
	TaskCount       int
	TaskAmount      decimal.Decimal
	POCount         int
	POAmount        decimal.Decimal
	AverageAmount   decimal.Decimal
	PendingPayments decimal.Decimal
}

// GetSummary aggregates totals, per-type counts and the average for one employee.
func (r *CommissionRepository) GetSummary(ctx context.Context, employeeID string) (*CommissionSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE commission_type = 'task_completion'),
			COALESCE(SUM(amount) FILTER (WHERE commission_type = 'task_completion'), 0),
			COUNT(*) FILTER (WHERE commission_type = 'po_completion'),
			COALESCE(SUM(amount) FILTER (WHERE commission_type = 'po_completion'), 0),
			COALESCE(AVG(amount), 0),
			COALESCE(SUM(amount) FILTER (WHERE payroll_id IS NULL), 0)
		FROM commission_records
		WHERE employee_id = $1
	`

	var s CommissionSummary
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&s.TotalAmount,
		&s.TotalCount,
		&s.TaskCount,
		&s.TaskAmount,
		&s.POCount,
		&s.POAmount,
		&s.AverageAmount,
		&s.PendingPayments,
	)
	if err != nil {
		return nil, fmt.Errorf("query commission summary: %w", err)
	}
	return &s, nil
}

// POSummary is the purchase-order slice of an employee's commissions.
type POSummary struct {
	TotalPOAmount     decimal.Decimal
	TotalPOCommission decimal.Decimal
	CompletedPOs      int
	AverageCommission decimal.Decimal
}

// GetPOSummary aggregates PO-linked commissions together with the order
// values that produced them.
func (r *CommissionRepository) GetPOSummary(ctx context.Context, employeeID string) (*POSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(po.total_amount), 0),
			COALESCE(SUM(cr.amount), 0),
			COUNT(*),
			COALESCE(AVG(cr.amount), 0)
		FROM commission_records cr
		JOIN purchase_orders po ON po.task_id = cr.task_id
		WHERE cr.employee_id = $1 AND cr.commission_type = 'po_completion'
	`

	var s POSummary
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&s.TotalPOAmount,
		&s.TotalPOCommission,
		&s.CompletedPOs,
		&s.AverageCommission,
	)
	if err != nil {
		return nil, fmt.Errorf("query PO commission summary: %w", err)
	}
	return &s, nil
}
