package repositories

import (
	"context"
	"time"

	"github.com/paycove/payroll_engine/internal/core/domain"
)

// ProfileReader defines read operations for employee pay profiles.
type ProfileReader interface {
	// FindActiveProfile retrieves the profile in effect for the employee at
	// the given date. Returns apperrors.ErrNotFound when no profile is active.
	FindActiveProfile(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*domain.EmployeePayProfile, error)

	// FindProfilesByEmployee retrieves all profile versions for an employee,
	// newest first.
	FindProfilesByEmployee(ctx context.Context, organizationID, employeeID string) ([]domain.EmployeePayProfile, error)
}

// ProfileWriter defines write operations for employee pay profiles.
type ProfileWriter interface {
	// SaveProfile persists a new profile version and closes the effective
	// window of any currently active profile in the same database
	// transaction, preserving the one-active-profile invariant.
	SaveProfile(ctx context.Context, profile domain.EmployeePayProfile) error
}

// ProfileRepositoryFacade combines the profile repository interfaces.
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
}
