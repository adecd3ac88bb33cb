package dto

import (
	"time"

	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRunRequest defines the payload for creating a payroll run.
type CreateRunRequest struct {
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
	RunType     string    `json:"runType" binding:"required"`
	TaxYear     int       `json:"taxYear" binding:"required"`
}

// ListRunsParams holds parameters for listing runs.
type ListRunsParams struct {
	Limit     int
	NextToken *string
}

// RunResponse defines the data returned for a payroll run.
type RunResponse struct {
	RunID           string          `json:"runID"`
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
	RunType         string          `json:"runType"`
	Status          string          `json:"status"`
	TotalEmployees  int             `json:"totalEmployees"`
	TotalGrossPay   decimal.Decimal `json:"totalGrossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalTaxes      decimal.Decimal `json:"totalTaxes"`
	TotalNetPay     decimal.Decimal `json:"totalNetPay"`
	ApprovedBy      string          `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	ErrorCount      int             `json:"errorCount"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ListRunsResponse wraps a page of runs with the pagination token.
type ListRunsResponse struct {
	Runs      []RunResponse `json:"runs"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// RecordResponse defines the data returned for an employee payroll record.
type RecordResponse struct {
	RecordID        string          `json:"recordID"`
	EmployeeID      string          `json:"employeeID"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalTaxes      decimal.Decimal `json:"totalTaxes"`
	NetPay          decimal.Decimal `json:"netPay"`
	HoursWorked     decimal.Decimal `json:"hoursWorked"`
	OvertimeHours   decimal.Decimal `json:"overtimeHours"`
}

// ToRunResponse converts a domain.PayrollRun to RunResponse.
func ToRunResponse(r *domain.PayrollRun) RunResponse {
	return RunResponse{
		RunID:           r.RunID,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		RunType:         string(r.RunType),
		Status:          string(r.Status),
		TotalEmployees:  r.TotalEmployees,
		TotalGrossPay:   r.TotalGrossPay,
		TotalDeductions: r.TotalDeductions,
		TotalTaxes:      r.TotalTaxes,
		TotalNetPay:     r.TotalNetPay,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		PaidAt:          r.PaidAt,
		ErrorCount:      len(r.ErrorLog),
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
	}
}

// ToRecordResponse converts a domain.EmployeePayrollRecord to RecordResponse.
func ToRecordResponse(rec *domain.EmployeePayrollRecord) RecordResponse {
	return RecordResponse{
		RecordID:        rec.RecordID,
		EmployeeID:      rec.EmployeeID,
		GrossPay:        rec.GrossPay,
		TotalDeductions: rec.TotalDeductions,
		TotalTaxes:      rec.TotalTaxes,
		NetPay:          rec.NetPay,
		HoursWorked:     rec.HoursWorked,
		OvertimeHours:   rec.OvertimeHours,
	}
}

// ToRecordResponses converts a slice of records.
func ToRecordResponses(recs []domain.EmployeePayrollRecord) []RecordResponse {
	out := make([]RecordResponse, len(recs))
	for i := range recs {
		out[i] = ToRecordResponse(&recs[i])
	}
	return out
}
