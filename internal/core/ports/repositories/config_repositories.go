package repositories

import (
	"context"

	"github.com/paycove/payroll_engine/internal/core/domain"
)

// ConfigReader defines read operations for payroll configuration.
type ConfigReader interface {
	// FindConfiguration retrieves the configuration for an organization and
	// tax year.
	FindConfiguration(ctx context.Context, organizationID string, year int) (*domain.PayrollConfiguration, error)

	// FindLatestConfiguration retrieves the configuration with the highest
	// tax year for an organization.
	FindLatestConfiguration(ctx context.Context, organizationID string) (*domain.PayrollConfiguration, error)
}

// ConfigWriter defines write operations for payroll configuration.
type ConfigWriter interface {
	// SaveConfiguration inserts or updates the configuration for
	// (organization, tax year). Configurations are never deleted, only
	// superseded by a later year.
	SaveConfiguration(ctx context.Context, config domain.PayrollConfiguration) error
}

// ConfigRepositoryFacade combines the configuration repository interfaces.
type ConfigRepositoryFacade interface {
	ConfigReader
	ConfigWriter
}
