package collaborators

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
)

// ProfileDirectory answers the roster question from the pay profile table:
// an employee is active when they hold a currently effective profile. It
// stands in for the HR system's directory when none is integrated.
type ProfileDirectory struct {
	pool *pgxpool.Pool
}

// NewProfileDirectory creates a directory backed by the pay profile table.
func NewProfileDirectory(pool *pgxpool.Pool) portssvc.EmployeeDirectory {
	return &ProfileDirectory{pool: pool}
}

var _ portssvc.EmployeeDirectory = (*ProfileDirectory)(nil)

// GetActiveEmployees implements portssvc.EmployeeDirectory.
func (d *ProfileDirectory) GetActiveEmployees(ctx context.Context, organizationID string) ([]string, error) {
	now := time.Now().UTC()
	query := `SELECT DISTINCT employee_id FROM employee_pay_profiles
		WHERE organization_id = $1 AND is_active
			AND effective_from <= $2 AND (effective_to IS NULL OR effective_to > $2)
		ORDER BY employee_id;`
	rows, err := d.pool.Query(ctx, query, organizationID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	employees := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee ID: %w", err)
		}
		employees = append(employees, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}
	return employees, nil
}
