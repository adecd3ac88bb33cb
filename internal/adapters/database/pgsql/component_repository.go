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

// PgxComponentRepository persists the payroll component catalog.
type PgxComponentRepository struct {
	BaseRepository
}

// newPgxComponentRepository creates a new repository for catalog components.
func newPgxComponentRepository(pool *pgxpool.Pool) portsrepo.ComponentRepositoryFacade {
	return &PgxComponentRepository{BaseRepository{Pool: pool}}
}

const componentColumns = `component_id, organization_id, name, component_type, calculation_type,
	amount, percentage, is_taxable, is_pretax, is_mandatory, sort_order, is_active, previous_version_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanComponent(row pgx.Row) (*domain.PayrollComponent, error) {
	var c domain.PayrollComponent
	err := row.Scan(
		&c.ComponentID,
		&c.OrganizationID,
		&c.Name,
		&c.ComponentType,
		&c.CalculationType,
		&c.Amount,
		&c.Percentage,
		&c.IsTaxable,
		&c.IsPretax,
		&c.IsMandatory,
		&c.SortOrder,
		&c.IsActive,
		&c.PreviousVersionID,
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

// FindComponentByID retrieves a component by its ID.
func (r *PgxComponentRepository) FindComponentByID(ctx context.Context, componentID string) (*domain.PayrollComponent, error) {
	query := `SELECT ` + componentColumns + ` FROM payroll_components WHERE component_id = $1;`
	c, err := scanComponent(r.Pool.QueryRow(ctx, query, componentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find component %s: %w", componentID, err)
	}
	return c, nil
}

// ListComponentsByOrganization retrieves the catalog ordered by sort order.
func (r *PgxComponentRepository) ListComponentsByOrganization(ctx context.Context, organizationID string, activeOnly bool) ([]domain.PayrollComponent, error) {
	query := `SELECT ` + componentColumns + ` FROM payroll_components WHERE organization_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY sort_order, component_id;`

	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query components for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	components := []domain.PayrollComponent{}
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan component row: %w", err)
		}
		components = append(components, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating component rows: %w", err)
	}
	return components, nil
}

func insertComponent(ctx context.Context, q execer, c domain.PayrollComponent) error {
	query := `
		INSERT INTO payroll_components (` + componentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := q.Exec(ctx, query,
		c.ComponentID,
		c.OrganizationID,
		c.Name,
		c.ComponentType,
		c.CalculationType,
		c.Amount,
		c.Percentage,
		c.IsTaxable,
		c.IsPretax,
		c.IsMandatory,
		c.SortOrder,
		c.IsActive,
		c.PreviousVersionID,
		c.CreatedAt,
		c.CreatedBy,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert component %s: %w", c.ComponentID, err)
	}
	return nil
}

// SaveComponent persists a new component.
func (r *PgxComponentRepository) SaveComponent(ctx context.Context, component domain.PayrollComponent) error {
	return insertComponent(ctx, r.Pool, component)
}

// UpdateComponent updates a component in place.
func (r *PgxComponentRepository) UpdateComponent(ctx context.Context, component domain.PayrollComponent) error {
	query := `
		UPDATE payroll_components
		SET name = $1, amount = $2, percentage = $3, is_taxable = $4, is_pretax = $5,
			is_mandatory = $6, sort_order = $7, is_active = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE component_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		component.Name,
		component.Amount,
		component.Percentage,
		component.IsTaxable,
		component.IsPretax,
		component.IsMandatory,
		component.SortOrder,
		component.IsActive,
		component.LastUpdatedAt,
		component.LastUpdatedBy,
		component.ComponentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update component %s: %w", component.ComponentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SupersedeComponent deactivates the old component and inserts its
// replacement in one database transaction.
func (r *PgxComponentRepository) SupersedeComponent(ctx context.Context, oldComponentID string, replacement domain.PayrollComponent) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	deactivateQuery := `
		UPDATE payroll_components
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE component_id = $3;
	`
	tag, err := tx.Exec(ctx, deactivateQuery, replacement.LastUpdatedAt, replacement.LastUpdatedBy, oldComponentID)
	if err != nil {
		return fmt.Errorf("failed to deactivate component %s: %w", oldComponentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertComponent(ctx, tx, replacement); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit component supersession for %s: %w", oldComponentID, err)
	}
	return nil
}

// IsComponentReferenced reports whether any payroll item references the component.
func (r *PgxComponentRepository) IsComponentReferenced(ctx context.Context, componentID string) (bool, error) {
	var referenced bool
	query := `SELECT EXISTS (SELECT 1 FROM payroll_items WHERE component_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, componentID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check references for component %s: %w", componentID, err)
	}
	return referenced, nil
}
