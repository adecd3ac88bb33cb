package repositories

import (
	"context"

	"github.com/paycove/payroll_engine/internal/core/domain"
)

// ComponentReader defines read operations for the component catalog.
type ComponentReader interface {
	// FindComponentByID retrieves a component by its unique identifier.
	FindComponentByID(ctx context.Context, componentID string) (*domain.PayrollComponent, error)

	// ListComponentsByOrganization retrieves components for an organization
	// ordered by sort order. When activeOnly is set, superseded and
	// deactivated components are excluded.
	ListComponentsByOrganization(ctx context.Context, organizationID string, activeOnly bool) ([]domain.PayrollComponent, error)
}

// ComponentWriter defines write operations for the component catalog.
type ComponentWriter interface {
	// SaveComponent persists a new component.
	SaveComponent(ctx context.Context, component domain.PayrollComponent) error

	// UpdateComponent updates a component in place. Only legal while the
	// component is unreferenced by posted items.
	UpdateComponent(ctx context.Context, component domain.PayrollComponent) error

	// SupersedeComponent deactivates the old component and inserts its
	// replacement in one database transaction.
	SupersedeComponent(ctx context.Context, oldComponentID string, replacement domain.PayrollComponent) error

	// IsComponentReferenced reports whether any payroll item references the component.
	IsComponentReferenced(ctx context.Context, componentID string) (bool, error)
}

// ComponentRepositoryFacade combines the component repository interfaces.
type ComponentRepositoryFacade interface {
	ComponentReader
	ComponentWriter
}
