package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType defines the pay basis of an employee.
type PayType string

const (
	PaySalary     PayType = "SALARY"
	PayHourly     PayType = "HOURLY"
	PayCommission PayType = "COMMISSION"
	PayContract   PayType = "CONTRACT"
)

// IsValid reports whether the pay type is one of the known values.
func (t PayType) IsValid() bool {
	switch t {
	case PaySalary, PayHourly, PayCommission, PayContract:
		return true
	}
	return false
}

// EmployeePayProfile is the per-employee pay basis. Profiles are
// effective-dated; exactly one profile is active per employee at any time.
type EmployeePayProfile struct {
	ProfileID             string          `json:"profileID"`      // Primary key (UUID)
	OrganizationID        string          `json:"organizationID"` // Owning organization
	EmployeeID            string          `json:"employeeID"`
	PayType               PayType         `json:"payType"`
	BaseSalary            decimal.Decimal `json:"baseSalary"`     // Full-period amount for SALARY/CONTRACT
	HourlyRate            decimal.Decimal `json:"hourlyRate"`     // For HOURLY (and overtime math)
	CommissionRate        decimal.Decimal `json:"commissionRate"` // Fraction of reported sales for COMMISSION
	FederalExemptions     int             `json:"federalExemptions"`
	StateExemptions       int             `json:"stateExemptions"`
	AdditionalWithholding decimal.Decimal `json:"additionalWithholding"` // Extra per-period withholding elected by the employee
	BankName              string          `json:"bankName"`
	BankAccountNumber     string          `json:"bankAccountNumber"`
	BankRoutingNumber     string          `json:"bankRoutingNumber"`
	BenefitElections      []string        `json:"benefitElections"` // Component IDs the employee opted into
	EffectiveFrom         time.Time       `json:"effectiveFrom"`
	EffectiveTo           *time.Time      `json:"effectiveTo,omitempty"` // Nil while the profile is open-ended
	IsActive              bool            `json:"isActive"`
	AuditFields
}

// ActiveAt reports whether the profile is in effect at the given date.
func (p *EmployeePayProfile) ActiveAt(at time.Time) bool {
	if !p.IsActive || at.Before(p.EffectiveFrom) {
		return false
	}
	return p.EffectiveTo == nil || at.Before(*p.EffectiveTo)
}
