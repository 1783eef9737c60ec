package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Luciferhub44/clean-emp/internal/domain"
)

// SettingsRepository handles the singleton payroll configuration row.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func scanSettings(row pgx.Row) (*domain.PayrollSettings, error) {
	var s domain.PayrollSettings
	err := row.Scan(
		&s.ID,
		&s.BaseSalary,
		&s.CommissionRate,
		&s.POCommissionRate,
		&s.PayPeriod,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("scan payroll settings: %w", err)
	}
	return &s, nil
}

// Get retrieves the payroll settings singleton.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.PayrollSettings, error) {
	query, args, err := psql.
		Select("id", "base_salary", "commission_rate", "po_commission_rate",
			"pay_period", "created_at", "updated_at").
		From("payroll_settings").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Get query for settings: %w", err)
	}

	return scanSettings(r.pool.QueryRow(ctx, query, args...))
}

// Upsert writes the settings singleton. The partial unique index on the
// table guarantees a single row; ON CONFLICT updates it in place.
func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.PayrollSettings) (*domain.PayrollSettings, error) {
	// Squirrel has no ON CONFLICT support for expression indexes; raw SQL here.
	query := `
		INSERT INTO payroll_settings (base_salary, commission_rate, po_commission_rate, pay_period)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ((true)) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			commission_rate = EXCLUDED.commission_rate,
			po_commission_rate = EXCLUDED.po_commission_rate,
			pay_period = EXCLUDED.pay_period,
			updated_at = NOW()
		RETURNING id, base_salary, commission_rate, po_commission_rate, pay_period, created_at, updated_at
	`

	return scanSettings(r.pool.QueryRow(ctx, query,
		s.BaseSalary, s.CommissionRate, s.POCommissionRate, s.PayPeriod,
	))
}
