package services

import (
	"context"
	"time"

	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/paycove/payroll_engine/internal/dto"
)

// RunSvcFacade exposes the payroll run lifecycle: creation, batch
// processing, approval gating, payment and cancellation.
type RunSvcFacade interface {
	// CreateRun creates a run in DRAFT state for one (period, run type).
	CreateRun(ctx context.Context, organizationID string, req dto.CreateRunRequest, creatorUserID string) (*domain.PayrollRun, error)

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, organizationID, runID string) (*domain.PayrollRun, error)

	// ListRuns retrieves a paginated list of runs for an organization.
	ListRuns(ctx context.Context, organizationID string, params dto.ListRunsParams) (*dto.ListRunsResponse, error)

	// ProcessRun generates pay items for every eligible employee and moves
	// the run DRAFT → PROCESSING → REVIEW. Per-employee failures are recorded
	// in the run error log and do not abort the batch; a fatal error rolls
	// the run back to DRAFT.
	ProcessRun(ctx context.Context, organizationID, runID string, userID string) (*domain.PayrollRun, error)

	// ApproveRun moves a run REVIEW → APPROVED, enforcing segregation of
	// duties when configured.
	ApproveRun(ctx context.Context, organizationID, runID string, approverUserID string) (*domain.PayrollRun, error)

	// PayRun moves a run APPROVED → PAID and fires the disbursement collaborator.
	PayRun(ctx context.Context, organizationID, runID string, userID string) (*domain.PayrollRun, error)

	// CancelRun cancels a non-terminal run, voiding its items and records
	// without deleting them.
	CancelRun(ctx context.Context, organizationID, runID string, userID string) (*domain.PayrollRun, error)

	// GetRunRecords retrieves the per-employee rollups for a run.
	GetRunRecords(ctx context.Context, organizationID, runID string) ([]domain.EmployeePayrollRecord, error)

	// GetRunErrors retrieves the run's ordered error log.
	GetRunErrors(ctx context.Context, organizationID, runID string) ([]domain.RunError, error)
}

// AdjustmentSvcFacade exposes the adjustment ledger.
type AdjustmentSvcFacade interface {
	// AddAdjustment inserts a pending adjustment on a mutable run.
	AddAdjustment(ctx context.Context, organizationID, runID string, req dto.AddAdjustmentRequest, creatorUserID string) (*domain.PayrollAdjustment, error)

	// ApproveAdjustment stamps the adjustment approved and recomputes the
	// owning employee record and run totals in the same transaction.
	ApproveAdjustment(ctx context.Context, organizationID, adjustmentID string, approverUserID string) (*domain.PayrollAdjustment, error)

	// ListAdjustments retrieves all adjustments for a run.
	ListAdjustments(ctx context.Context, organizationID, runID string) ([]domain.PayrollAdjustment, error)
}

// ComponentSvcFacade exposes the component catalog.
type ComponentSvcFacade interface {
	// CreateComponent adds a component to the catalog.
	CreateComponent(ctx context.Context, organizationID string, req dto.CreateComponentRequest, creatorUserID string) (*domain.PayrollComponent, error)

	// GetComponent retrieves a component by ID.
	GetComponent(ctx context.Context, organizationID, componentID string) (*domain.PayrollComponent, error)

	// ListComponents retrieves the catalog ordered by sort order.
	ListComponents(ctx context.Context, organizationID string, activeOnly bool) ([]domain.PayrollComponent, error)

	// UpdateComponent edits a component in place while unreferenced, or
	// creates a superseding version once posted items reference it.
	UpdateComponent(ctx context.Context, organizationID, componentID string, req dto.UpdateComponentRequest, userID string) (*domain.PayrollComponent, error)
}

// ProfileSvcFacade exposes employee pay profile management.
type ProfileSvcFacade interface {
	// UpsertProfile records a new effective-dated profile version for an
	// employee, closing the previous version's window.
	UpsertProfile(ctx context.Context, organizationID string, req dto.UpsertProfileRequest, userID string) (*domain.EmployeePayProfile, error)

	// GetActiveProfile retrieves the profile in effect at the given date.
	GetActiveProfile(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*domain.EmployeePayProfile, error)
}

// TaxYearSvcFacade exposes tax year snapshot management.
type TaxYearSvcFacade interface {
	// CreateTaxYear records an immutable snapshot for (organization, year).
	CreateTaxYear(ctx context.Context, organizationID string, req dto.CreateTaxYearRequest, userID string) (*domain.TaxYear, error)

	// GetTaxYear retrieves the active snapshot for a calendar year.
	GetTaxYear(ctx context.Context, organizationID string, year int) (*domain.TaxYear, error)
}

// ConfigSvcFacade exposes payroll configuration management.
type ConfigSvcFacade interface {
	// GetConfiguration retrieves the latest configuration for an organization.
	GetConfiguration(ctx context.Context, organizationID string) (*domain.PayrollConfiguration, error)

	// UpdateConfiguration inserts or updates the configuration for
	// (organization, tax year).
	UpdateConfiguration(ctx context.Context, organizationID string, req dto.UpdateConfigRequest, userID string) (*domain.PayrollConfiguration, error)
}

// GeneratorSvc expands one employee's profile, the component catalog and
// reported time into concrete payroll items for one run.
type GeneratorSvc interface {
	// GenerateForEmployee computes the full set of items and the derived
	// record for one employee in one run. It performs no writes.
	GenerateForEmployee(ctx context.Context, in dto.GenerationInput) (*dto.GenerationResult, error)
}
