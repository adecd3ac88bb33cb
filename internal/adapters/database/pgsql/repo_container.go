package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/paycove/payroll_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RunRepo:       newPgxRunRepository(dbPool),
		ComponentRepo: newPgxComponentRepository(dbPool),
		ProfileRepo:   newPgxProfileRepository(dbPool),
		TaxYearRepo:   newPgxTaxYearRepository(dbPool),
		ConfigRepo:    newPgxConfigRepository(dbPool),
	}
}
