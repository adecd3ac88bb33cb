package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus is the lifecycle state of a payroll run.
type RunStatus string

const (
	RunDraft      RunStatus = "DRAFT"
	RunProcessing RunStatus = "PROCESSING"
	RunReview     RunStatus = "REVIEW"
	RunApproved   RunStatus = "APPROVED"
	RunPaid       RunStatus = "PAID"
	RunCancelled  RunStatus = "CANCELLED"
)

// RunType distinguishes the regular payroll cycle from special runs.
type RunType string

const (
	RunTypeRegular    RunType = "REGULAR"
	RunTypeBonus      RunType = "BONUS"
	RunTypeCorrection RunType = "CORRECTION"
)

// IsValid reports whether the run type is one of the known values.
func (t RunType) IsValid() bool {
	switch t {
	case RunTypeRegular, RunTypeBonus, RunTypeCorrection:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s RunStatus) IsTerminal() bool {
	return s == RunPaid || s == RunCancelled
}

// AllowsItemMutation reports whether payroll items and adjustments belonging
// to a run in this state may still be created or modified. Once a run is
// approved its financial records are frozen.
func (s RunStatus) AllowsItemMutation() bool {
	switch s {
	case RunDraft, RunProcessing, RunReview:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next. Cancellation is reachable from every non-terminal state.
func (s RunStatus) CanTransitionTo(next RunStatus) bool {
	if next == RunCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case RunDraft:
		return next == RunProcessing
	case RunProcessing:
		// Review on success, draft on rollback after a fatal error.
		return next == RunReview || next == RunDraft
	case RunReview:
		return next == RunApproved
	case RunApproved:
		return next == RunPaid
	}
	return false
}

// RunError is one entry in a run's append-only error log.
type RunError struct {
	EmployeeID string    `json:"employeeID,omitempty"` // Empty for run-level errors
	Code       string    `json:"code"`                 // e.g. PROFILE_MISSING, DATA_UNAVAILABLE, FATAL
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Error codes recorded in the run error log.
const (
	RunErrProfileMissing  = "PROFILE_MISSING"
	RunErrDataUnavailable = "DATA_UNAVAILABLE"
	RunErrFatal           = "FATAL"
)

// PayrollRun is the unit of batch processing for one
// (organization, period, run type). At most one non-cancelled run may exist
// per (period, run type); the repository enforces this with a partial unique
// index. Aggregate totals are always a pure function of the run's items and
// approved adjustments and are never edited independently.
type PayrollRun struct {
	RunID           string          `json:"runID"`          // Primary key (UUID)
	OrganizationID  string          `json:"organizationID"` // Owning organization
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
	RunType         RunType         `json:"runType"`
	Status          RunStatus       `json:"status"`
	TaxYearID       string          `json:"taxYearID"` // Immutable snapshot the run computes against
	TotalEmployees  int             `json:"totalEmployees"`
	TotalGrossPay   decimal.Decimal `json:"totalGrossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalTaxes      decimal.Decimal `json:"totalTaxes"`
	TotalNetPay     decimal.Decimal `json:"totalNetPay"`
	ErrorLog        []RunError      `json:"errorLog,omitempty"` // Append-only, ordered
	PreparedBy      string          `json:"preparedBy"`         // User who triggered processing
	ApprovedBy      string          `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty"`
	Version         int64           `json:"version"` // Optimistic lock counter for total recomputation
	AuditFields
}
