package services

import (
	"context"

	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportedHours is the attendance collaborator's answer for one employee in
// one period.
type ReportedHours struct {
	HoursWorked   decimal.Decimal
	OvertimeHours decimal.Decimal
}

// EmployeeDirectory is the HR module's read-only roster contract.
type EmployeeDirectory interface {
	// GetActiveEmployees lists the IDs of active employees for an organization.
	GetActiveEmployees(ctx context.Context, organizationID string) ([]string, error)
}

// AttendanceSource is the time-tracking collaborator contract.
type AttendanceSource interface {
	// GetReportedHours returns worked and overtime hours for one employee in
	// one run's period.
	GetReportedHours(ctx context.Context, employeeID, runID string) (ReportedHours, error)
}

// SalesSource reports period sales figures for commission-based employees.
type SalesSource interface {
	// GetReportedSales returns the sales total for one employee in one run's period.
	GetReportedSales(ctx context.Context, employeeID, runID string) (decimal.Decimal, error)
}

// Disburser is the banking integration invoked when a run is paid.
type Disburser interface {
	// Disburse pays out the given records. The engine treats this as a
	// synchronous dependency with the caller's context deadline; it defines
	// no retry loop of its own.
	Disburse(ctx context.Context, run domain.PayrollRun, records []domain.EmployeePayrollRecord) error
}

// RunNotifier receives run lifecycle events. Implementations are
// fire-and-forget from the engine's perspective; failures are logged, never
// propagated into the state transition.
type RunNotifier interface {
	OnRunApproved(ctx context.Context, run domain.PayrollRun)
	OnRunPaid(ctx context.Context, run domain.PayrollRun)
	OnRunFailed(ctx context.Context, run domain.PayrollRun, errorLog []domain.RunError)
}
