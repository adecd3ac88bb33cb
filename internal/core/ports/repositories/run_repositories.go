package repositories

import (
	"context"

	"github.com/paycove/payroll_engine/internal/core/domain"
)

// RunReader defines read operations for payroll run data.
type RunReader interface {
	// FindRunByID retrieves a specific run by its unique identifier.
	FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error)

	// FindRunStatus retrieves only the current status of a run. Used by the
	// generator to observe cancellation cheaply before each per-employee write.
	FindRunStatus(ctx context.Context, runID string) (domain.RunStatus, error)

	// ListRunsByOrganization retrieves a paginated list of runs using
	// token-based pagination. Returns the runs, a token for the next page,
	// and an error.
	ListRunsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PayrollRun, *string, error)
}

// RunWriter defines write operations for payroll run data.
type RunWriter interface {
	// CreateRun persists a new run in DRAFT state. The single-active-run
	// invariant per (organization, period, run type) is enforced by a partial
	// unique index; violations surface as apperrors.ErrDuplicate.
	CreateRun(ctx context.Context, run domain.PayrollRun) error

	// SaveRunState updates a run's status, totals and lifecycle stamps using
	// compare-and-swap on the version counter. The error log is written only
	// through AppendRunErrors. A stale expectedVersion surfaces as
	// apperrors.ErrConflict and writes nothing.
	SaveRunState(ctx context.Context, run domain.PayrollRun, expectedVersion int64) error

	// AppendRunErrors appends entries to a run's ordered, append-only error log.
	AppendRunErrors(ctx context.Context, runID string, errs []domain.RunError) error
}

// ItemReader defines read operations for payroll items.
type ItemReader interface {
	// FindItemsByRunID retrieves all non-void items for a run, ordered by
	// employee and sort order.
	FindItemsByRunID(ctx context.Context, runID string) ([]domain.PayrollItem, error)

	// FindItemsByRunAndEmployee retrieves one employee's non-void items within a run.
	FindItemsByRunAndEmployee(ctx context.Context, runID, employeeID string) ([]domain.PayrollItem, error)
}

// ItemWriter defines write operations for payroll items.
type ItemWriter interface {
	// ReplaceEmployeeItems atomically voids an employee's existing items in a
	// run and inserts the given replacements. This is the idempotent
	// per-employee write used by generation; each call touches only that
	// employee's rows.
	ReplaceEmployeeItems(ctx context.Context, runID, employeeID string, items []domain.PayrollItem) error

	// VoidRunItems flags every item of a run as void. Used on cancellation;
	// rows are kept for the audit trail.
	VoidRunItems(ctx context.Context, runID string) error
}

// RecordReader defines read operations for per-employee payroll records.
type RecordReader interface {
	// FindRecordsByRunID retrieves all records for a run.
	FindRecordsByRunID(ctx context.Context, runID string) ([]domain.EmployeePayrollRecord, error)

	// FindRecordByRunAndEmployee retrieves one employee's record within a run.
	FindRecordByRunAndEmployee(ctx context.Context, runID, employeeID string) (*domain.EmployeePayrollRecord, error)
}

// RecordWriter defines write operations for per-employee payroll records.
type RecordWriter interface {
	// UpsertRecord inserts or replaces the record for (run, employee).
	UpsertRecord(ctx context.Context, record domain.EmployeePayrollRecord) error

	// VoidEmployeeRecord flags one employee's record in a run as void. Used
	// when regeneration skips the employee, so a record from an earlier pass
	// cannot leak into the run totals.
	VoidEmployeeRecord(ctx context.Context, runID, employeeID string) error

	// VoidRunRecords flags every record of a run as void.
	VoidRunRecords(ctx context.Context, runID string) error
}

// AdjustmentReader defines read operations for payroll adjustments.
type AdjustmentReader interface {
	// FindAdjustmentByID retrieves an adjustment by its unique identifier.
	FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.PayrollAdjustment, error)

	// FindAdjustmentsByRunID retrieves all adjustments for a run.
	FindAdjustmentsByRunID(ctx context.Context, runID string) ([]domain.PayrollAdjustment, error)
}

// AdjustmentWriter defines write operations for payroll adjustments.
type AdjustmentWriter interface {
	// SaveAdjustment persists a new pending adjustment.
	SaveAdjustment(ctx context.Context, adjustment domain.PayrollAdjustment) error

	// ApproveAdjustment stamps the adjustment approved and writes the
	// recomputed employee record and run totals in the same database
	// transaction, compare-and-swapping on the run version. A stale
	// expectedVersion surfaces as apperrors.ErrConflict and writes nothing.
	ApproveAdjustment(ctx context.Context, adjustment domain.PayrollAdjustment, record domain.EmployeePayrollRecord, run domain.PayrollRun, expectedVersion int64) error
}

// RunRepositoryFacade combines every run-scoped repository interface.
type RunRepositoryFacade interface {
	RunReader
	RunWriter
	ItemReader
	ItemWriter
	RecordReader
	RecordWriter
	AdjustmentReader
	AdjustmentWriter
}

// RunRepositoryWithTx extends RunRepositoryFacade with transaction capabilities.
type RunRepositoryWithTx interface {
	RunRepositoryFacade
	TransactionManager
}
