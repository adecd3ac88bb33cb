package dto

import (
	"time"

	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerationInput carries everything the pay item generator needs to compute
// one employee's items for one run. All inputs are read-only snapshots; the
// generator performs no I/O.
type GenerationInput struct {
	Run           domain.PayrollRun
	Profile       domain.EmployeePayProfile
	Config        domain.PayrollConfiguration
	TaxYear       domain.TaxYear
	Components    []domain.PayrollComponent // Catalog, already sorted by sort order
	HoursWorked   decimal.Decimal
	OvertimeHours decimal.Decimal
	ReportedSales decimal.Decimal // Only consulted for COMMISSION profiles
	UserID        string
	Now           time.Time // Audit stamp, fixed per batch
}

// GenerationResult is the generator's output for one employee: the full item
// set and the derived rollup, ready to persist.
type GenerationResult struct {
	Items  []domain.PayrollItem
	Record domain.EmployeePayrollRecord
}
