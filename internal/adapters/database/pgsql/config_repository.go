package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portsrepo "github.com/paycove/payroll_engine/internal/core/ports/repositories"
)

// PgxConfigRepository persists per-organization payroll configuration.
type PgxConfigRepository struct {
	BaseRepository
}

// newPgxConfigRepository creates a new repository for configuration data.
func newPgxConfigRepository(pool *pgxpool.Pool) portsrepo.ConfigRepositoryFacade {
	return &PgxConfigRepository{BaseRepository{Pool: pool}}
}

const configColumns = `config_id, organization_id, tax_year, currency_code, pay_frequency,
	overtime_multiplier, double_time_multiplier, double_time_threshold, workday_hours,
	auto_process, require_approval, segregate_duties, allow_manual_adjustments,
	created_at, created_by, last_updated_at, last_updated_by`

func scanConfig(row pgx.Row) (*domain.PayrollConfiguration, error) {
	var c domain.PayrollConfiguration
	err := row.Scan(
		&c.ConfigID,
		&c.OrganizationID,
		&c.TaxYear,
		&c.CurrencyCode,
		&c.PayFrequency,
		&c.OvertimeMultiplier,
		&c.DoubleTimeMultiplier,
		&c.DoubleTimeThreshold,
		&c.WorkdayHours,
		&c.AutoProcess,
		&c.RequireApproval,
		&c.SegregateDuties,
		&c.AllowManualAdjustments,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindConfiguration retrieves the configuration for (organization, tax year).
func (r *PgxConfigRepository) FindConfiguration(ctx context.Context, organizationID string, year int) (*domain.PayrollConfiguration, error) {
	query := `SELECT ` + configColumns + ` FROM payroll_configurations
		WHERE organization_id = $1 AND tax_year = $2;`
	c, err := scanConfig(r.Pool.QueryRow(ctx, query, organizationID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find configuration for organization %s year %d: %w", organizationID, year, err)
	}
	return c, nil
}

// FindLatestConfiguration retrieves the newest configuration for an organization.
func (r *PgxConfigRepository) FindLatestConfiguration(ctx context.Context, organizationID string) (*domain.PayrollConfiguration, error) {
	query := `SELECT ` + configColumns + ` FROM payroll_configurations
		WHERE organization_id = $1
		ORDER BY tax_year DESC
		LIMIT 1;`
	c, err := scanConfig(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest configuration for organization %s: %w", organizationID, err)
	}
	return c, nil
}

// SaveConfiguration inserts or updates the configuration for
// (organization, tax year).
func (r *PgxConfigRepository) SaveConfiguration(ctx context.Context, config domain.PayrollConfiguration) error {
	query := `
		INSERT INTO payroll_configurations (` + configColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (organization_id, tax_year) DO UPDATE
		SET currency_code = EXCLUDED.currency_code, pay_frequency = EXCLUDED.pay_frequency,
			overtime_multiplier = EXCLUDED.overtime_multiplier,
			double_time_multiplier = EXCLUDED.double_time_multiplier,
			double_time_threshold = EXCLUDED.double_time_threshold,
			workday_hours = EXCLUDED.workday_hours, auto_process = EXCLUDED.auto_process,
			require_approval = EXCLUDED.require_approval, segregate_duties = EXCLUDED.segregate_duties,
			allow_manual_adjustments = EXCLUDED.allow_manual_adjustments,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		config.ConfigID,
		config.OrganizationID,
		config.TaxYear,
		config.CurrencyCode,
		config.PayFrequency,
		config.OvertimeMultiplier,
		config.DoubleTimeMultiplier,
		config.DoubleTimeThreshold,
		config.WorkdayHours,
		config.AutoProcess,
		config.RequireApproval,
		config.SegregateDuties,
		config.AllowManualAdjustments,
		config.CreatedAt,
		config.CreatedBy,
		config.LastUpdatedAt,
		config.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save configuration %s: %w", config.ConfigID, err)
	}
	return nil
}
