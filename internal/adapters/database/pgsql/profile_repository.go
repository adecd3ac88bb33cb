package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portsrepo "github.com/paycove/payroll_engine/internal/core/ports/repositories"
)

// PgxProfileRepository persists effective-dated employee pay profiles.
type PgxProfileRepository struct {
	BaseRepository
}

// newPgxProfileRepository creates a new repository for pay profile data.
func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{BaseRepository{Pool: pool}}
}

const profileColumns = `profile_id, organization_id, employee_id, pay_type, base_salary, hourly_rate,
	commission_rate, federal_exemptions, state_exemptions, additional_withholding,
	bank_name, bank_account_number, bank_routing_number, benefit_elections,
	effective_from, effective_to, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanProfile(row pgx.Row) (*domain.EmployeePayProfile, error) {
	var p domain.EmployeePayProfile
	err := row.Scan(
		&p.ProfileID,
		&p.OrganizationID,
		&p.EmployeeID,
		&p.PayType,
		&p.BaseSalary,
		&p.HourlyRate,
		&p.CommissionRate,
		&p.FederalExemptions,
		&p.StateExemptions,
		&p.AdditionalWithholding,
		&p.BankName,
		&p.BankAccountNumber,
		&p.BankRoutingNumber,
		&p.BenefitElections,
		&p.EffectiveFrom,
		&p.EffectiveTo,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindActiveProfile retrieves the profile in effect at the given date.
func (r *PgxProfileRepository) FindActiveProfile(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*domain.EmployeePayProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM employee_pay_profiles
		WHERE organization_id = $1 AND employee_id = $2 AND is_active
			AND effective_from <= $3 AND (effective_to IS NULL OR effective_to > $3)
		ORDER BY effective_from DESC
		LIMIT 1;`
	p, err := scanProfile(r.Pool.QueryRow(ctx, query, organizationID, employeeID, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active profile for employee %s: %w", employeeID, err)
	}
	return p, nil
}

// FindProfilesByEmployee retrieves all profile versions for an employee,
// newest first.
func (r *PgxProfileRepository) FindProfilesByEmployee(ctx context.Context, organizationID, employeeID string) ([]domain.EmployeePayProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM employee_pay_profiles
		WHERE organization_id = $1 AND employee_id = $2
		ORDER BY effective_from DESC;`
	rows, err := r.Pool.Query(ctx, query, organizationID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	profiles := []domain.EmployeePayProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

// SaveProfile persists a new profile version and closes the effective window
// of the currently open version in the same database transaction.
func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.EmployeePayProfile) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	closeQuery := `
		UPDATE employee_pay_profiles
		SET effective_to = $1, last_updated_at = $2, last_updated_by = $3
		WHERE organization_id = $4 AND employee_id = $5 AND is_active AND effective_to IS NULL;
	`
	if _, err := tx.Exec(ctx, closeQuery,
		profile.EffectiveFrom,
		profile.LastUpdatedAt,
		profile.LastUpdatedBy,
		profile.OrganizationID,
		profile.EmployeeID,
	); err != nil {
		return fmt.Errorf("failed to close current profile window for employee %s: %w", profile.EmployeeID, err)
	}

	insertQuery := `
		INSERT INTO employee_pay_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		profile.ProfileID,
		profile.OrganizationID,
		profile.EmployeeID,
		profile.PayType,
		profile.BaseSalary,
		profile.HourlyRate,
		profile.CommissionRate,
		profile.FederalExemptions,
		profile.StateExemptions,
		profile.AdditionalWithholding,
		profile.BankName,
		profile.BankAccountNumber,
		profile.BankRoutingNumber,
		profile.BenefitElections,
		profile.EffectiveFrom,
		profile.EffectiveTo,
		profile.IsActive,
		profile.CreatedAt,
		profile.CreatedBy,
		profile.LastUpdatedAt,
		profile.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert profile %s: %w", profile.ProfileID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile version for employee %s: %w", profile.EmployeeID, err)
	}
	return nil
}
