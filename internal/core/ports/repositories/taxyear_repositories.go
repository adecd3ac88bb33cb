package repositories

import (
	"context"

	"github.com/paycove/payroll_engine/internal/core/domain"
)

// TaxYearReader defines read operations for tax year snapshots.
type TaxYearReader interface {
	// FindTaxYearByID retrieves a tax year snapshot by its unique identifier.
	FindTaxYearByID(ctx context.Context, taxYearID string) (*domain.TaxYear, error)

	// FindActiveTaxYear retrieves the active snapshot for the organization
	// and calendar year.
	FindActiveTaxYear(ctx context.Context, organizationID string, year int) (*domain.TaxYear, error)

	// IsTaxYearReferenced reports whether any payroll run references the
	// snapshot. Referenced snapshots are immutable.
	IsTaxYearReferenced(ctx context.Context, taxYearID string) (bool, error)
}

// TaxYearWriter defines write operations for tax year snapshots.
type TaxYearWriter interface {
	// SaveTaxYear persists a new snapshot. One active snapshot is allowed per
	// (organization, year); violations surface as apperrors.ErrDuplicate.
	SaveTaxYear(ctx context.Context, taxYear domain.TaxYear) error
}

// TaxYearRepositoryFacade combines the tax year repository interfaces.
type TaxYearRepositoryFacade interface {
	TaxYearReader
	TaxYearWriter
}
