package dto

import (
	"time"

	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddAdjustmentRequest defines the payload for attaching a manual correction
// to a run. The amount is always positive; direction comes from IsPositive.
type AddAdjustmentRequest struct {
	EmployeeID string          `json:"employeeID" binding:"required"`
	Type       string          `json:"type" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	IsPositive bool            `json:"isPositive"`
	IsTaxable  bool            `json:"isTaxable"`
	Reason     string          `json:"reason" binding:"required"`
}

// AdjustmentResponse defines the data returned for an adjustment.
type AdjustmentResponse struct {
	AdjustmentID string          `json:"adjustmentID"`
	RunID        string          `json:"runID"`
	EmployeeID   string          `json:"employeeID"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	IsPositive   bool            `json:"isPositive"`
	IsTaxable    bool            `json:"isTaxable"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	ApprovedBy   string          `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time      `json:"approvedAt,omitempty"`
}

// ToAdjustmentResponse converts a domain.PayrollAdjustment to AdjustmentResponse.
func ToAdjustmentResponse(a *domain.PayrollAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID: a.AdjustmentID,
		RunID:        a.RunID,
		EmployeeID:   a.EmployeeID,
		Type:         string(a.Type),
		Amount:       a.Amount,
		IsPositive:   a.IsPositive,
		IsTaxable:    a.IsTaxable,
		Reason:       a.Reason,
		Status:       string(a.Status),
		ApprovedBy:   a.ApprovedBy,
		ApprovedAt:   a.ApprovedAt,
	}
}

// ToAdjustmentResponses converts a slice of adjustments.
func ToAdjustmentResponses(as []domain.PayrollAdjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, len(as))
	for i := range as {
		out[i] = ToAdjustmentResponse(&as[i])
	}
	return out
}
