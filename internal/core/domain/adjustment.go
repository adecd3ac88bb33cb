package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType categorises a post-hoc correction to a run.
type AdjustmentType string

const (
	AdjustmentBonus         AdjustmentType = "BONUS"
	AdjustmentPenalty       AdjustmentType = "PENALTY"
	AdjustmentAdvance       AdjustmentType = "ADVANCE"
	AdjustmentReimbursement AdjustmentType = "REIMBURSEMENT"
)

// IsValid reports whether the adjustment type is one of the known values.
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentBonus, AdjustmentPenalty, AdjustmentAdvance, AdjustmentReimbursement:
		return true
	}
	return false
}

// AdjustmentStatus is the approval state of an adjustment.
type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "PENDING"
	AdjustmentApproved AdjustmentStatus = "APPROVED"
	AdjustmentRejected AdjustmentStatus = "REJECTED"
)

// PayrollAdjustment is a signed manual correction attached to a run.
// Adjustments are inserted pending and do not affect totals until approved.
// Approved adjustments are immutable; correcting one requires a new,
// offsetting adjustment.
type PayrollAdjustment struct {
	AdjustmentID string           `json:"adjustmentID"` // Primary key (UUID)
	RunID        string           `json:"runID"`
	EmployeeID   string           `json:"employeeID"`
	Type         AdjustmentType   `json:"type"`
	Amount       decimal.Decimal  `json:"amount"` // Always positive; direction is IsPositive
	IsPositive   bool             `json:"isPositive"`
	IsTaxable    bool             `json:"isTaxable"`
	Reason       string           `json:"reason"`
	Status       AdjustmentStatus `json:"status"`
	ApprovedBy   string           `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time       `json:"approvedAt,omitempty"`
	AuditFields
}

// SignedAmount returns the amount with its direction applied.
func (a *PayrollAdjustment) SignedAmount() decimal.Decimal {
	if a.IsPositive {
		return a.Amount
	}
	return a.Amount.Neg()
}
