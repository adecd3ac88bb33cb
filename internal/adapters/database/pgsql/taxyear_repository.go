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

// PgxTaxYearRepository persists tax year snapshots. Bracket tables and
// contributions are stored as jsonb documents; once a run references a
// snapshot it is never rewritten.
type PgxTaxYearRepository struct {
	BaseRepository
}

// newPgxTaxYearRepository creates a new repository for tax year data.
func newPgxTaxYearRepository(pool *pgxpool.Pool) portsrepo.TaxYearRepositoryFacade {
	return &PgxTaxYearRepository{BaseRepository{Pool: pool}}
}

const taxYearColumns = `tax_year_id, organization_id, year, standard_deduction, exemption_amount,
	federal_brackets, state_brackets, contributions, surcharge_rate, surcharge_threshold, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTaxYear(row pgx.Row) (*domain.TaxYear, error) {
	var t domain.TaxYear
	err := row.Scan(
		&t.TaxYearID,
		&t.OrganizationID,
		&t.Year,
		&t.StandardDeduction,
		&t.ExemptionAmount,
		&t.FederalBrackets,
		&t.StateBrackets,
		&t.Contributions,
		&t.SurchargeRate,
		&t.SurchargeThreshold,
		&t.IsActive,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindTaxYearByID retrieves a tax year snapshot by its ID.
func (r *PgxTaxYearRepository) FindTaxYearByID(ctx context.Context, taxYearID string) (*domain.TaxYear, error) {
	query := `SELECT ` + taxYearColumns + ` FROM tax_years WHERE tax_year_id = $1;`
	t, err := scanTaxYear(r.Pool.QueryRow(ctx, query, taxYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax year %s: %w", taxYearID, err)
	}
	return t, nil
}

// FindActiveTaxYear retrieves the active snapshot for (organization, year).
func (r *PgxTaxYearRepository) FindActiveTaxYear(ctx context.Context, organizationID string, year int) (*domain.TaxYear, error) {
	query := `SELECT ` + taxYearColumns + ` FROM tax_years
		WHERE organization_id = $1 AND year = $2 AND is_active;`
	t, err := scanTaxYear(r.Pool.QueryRow(ctx, query, organizationID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active tax year %d for organization %s: %w", year, organizationID, err)
	}
	return t, nil
}

// IsTaxYearReferenced reports whether any run references the snapshot.
func (r *PgxTaxYearRepository) IsTaxYearReferenced(ctx context.Context, taxYearID string) (bool, error) {
	var referenced bool
	query := `SELECT EXISTS (SELECT 1 FROM payroll_runs WHERE tax_year_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, taxYearID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check references for tax year %s: %w", taxYearID, err)
	}
	return referenced, nil
}

// SaveTaxYear persists a new snapshot. The partial unique index on active
// (organization, year) rows surfaces as ErrDuplicate.
func (r *PgxTaxYearRepository) SaveTaxYear(ctx context.Context, taxYear domain.TaxYear) error {
	query := `
		INSERT INTO tax_years (` + taxYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		taxYear.TaxYearID,
		taxYear.OrganizationID,
		taxYear.Year,
		taxYear.StandardDeduction,
		taxYear.ExemptionAmount,
		taxYear.FederalBrackets,
		taxYear.StateBrackets,
		taxYear.Contributions,
		taxYear.SurchargeRate,
		taxYear.SurchargeThreshold,
		taxYear.IsActive,
		taxYear.CreatedAt,
		taxYear.CreatedBy,
		taxYear.LastUpdatedAt,
		taxYear.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapDuplicate(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: an active tax year already exists for %d", apperrors.ErrDuplicate, taxYear.Year)
		}
		return fmt.Errorf("failed to insert tax year %s: %w", taxYear.TaxYearID, err)
	}
	return nil
}
