package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

// employeeColumns is the shared list of columns for employee queries.
var employeeColumns = []string{
	"id", "first_name", "last_name", "email", "role", "token", "is_active", "created_at",
}

// EmployeeRepository handles database operations for employees.
type EmployeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var emp domain.Employee
	err := row.Scan(
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Role,
		&emp.Token,
		&emp.IsActive,
		&emp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &emp, nil
}

// GetByToken finds an employee by authentication token.
func (r *EmployeeRepository) GetByToken(ctx context.Context, token string) (*domain.Employee, error) {
	query, args, err := psql.
		Select(employeeColumns...).
		From("employees").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByToken query: %w", err)
	}

	return scanEmployee(r.pool.QueryRow(ctx, query, args...))
}

// GetByID retrieves an employee by ID.
func (r *EmployeeRepository) GetByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query, args, err := psql.
		Select(employeeColumns...).
		From("employees").
		Where(sq.Eq{"id": employeeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for employee: %w", err)
	}

	return scanEmployee(r.pool.QueryRow(ctx, query, args...))
}

// ListActive retrieves all active employees, ordered by name.
// Used by the batch payroll run.
func (r *EmployeeRepository) ListActive(ctx context.Context) ([]*domain.Employee, error) {
	query, args, err := psql.
		Select(employeeColumns...).
		From("employees").
		Where(sq.Eq{"is_active": true}).
		OrderBy("last_name ASC", "first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListActive query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return employees, nil
}
