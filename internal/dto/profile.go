package dto

import (
	"time"

	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertProfileRequest defines the payload for recording a new pay profile
// version for an employee.
type UpsertProfileRequest struct {
	EmployeeID            string          `json:"employeeID" binding:"required"`
	PayType               string          `json:"payType" binding:"required"`
	BaseSalary            decimal.Decimal `json:"baseSalary"`
	HourlyRate            decimal.Decimal `json:"hourlyRate"`
	CommissionRate        decimal.Decimal `json:"commissionRate"`
	FederalExemptions     int             `json:"federalExemptions"`
	StateExemptions       int             `json:"stateExemptions"`
	AdditionalWithholding decimal.Decimal `json:"additionalWithholding"`
	BankName              string          `json:"bankName"`
	BankAccountNumber     string          `json:"bankAccountNumber"`
	BankRoutingNumber     string          `json:"bankRoutingNumber"`
	BenefitElections      []string        `json:"benefitElections"`
	EffectiveFrom         time.Time       `json:"effectiveFrom" binding:"required"`
}

// ProfileResponse defines the data returned for a pay profile. Banking
// details are partially masked.
type ProfileResponse struct {
	ProfileID         string          `json:"profileID"`
	EmployeeID        string          `json:"employeeID"`
	PayType           string          `json:"payType"`
	BaseSalary        decimal.Decimal `json:"baseSalary"`
	HourlyRate        decimal.Decimal `json:"hourlyRate"`
	CommissionRate    decimal.Decimal `json:"commissionRate"`
	FederalExemptions int             `json:"federalExemptions"`
	StateExemptions   int             `json:"stateExemptions"`
	BankName          string          `json:"bankName"`
	BankAccountLast4  string          `json:"bankAccountLast4"`
	EffectiveFrom     time.Time       `json:"effectiveFrom"`
	EffectiveTo       *time.Time      `json:"effectiveTo,omitempty"`
}

// ToProfileResponse converts a domain.EmployeePayProfile to ProfileResponse.
func ToProfileResponse(p *domain.EmployeePayProfile) ProfileResponse {
	last4 := p.BankAccountNumber
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	return ProfileResponse{
		ProfileID:         p.ProfileID,
		EmployeeID:        p.EmployeeID,
		PayType:           string(p.PayType),
		BaseSalary:        p.BaseSalary,
		HourlyRate:        p.HourlyRate,
		CommissionRate:    p.CommissionRate,
		FederalExemptions: p.FederalExemptions,
		StateExemptions:   p.StateExemptions,
		BankName:          p.BankName,
		BankAccountLast4:  last4,
		EffectiveFrom:     p.EffectiveFrom,
		EffectiveTo:       p.EffectiveTo,
	}
}
