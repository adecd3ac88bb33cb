package domain

import "github.com/shopspring/decimal"

// ComponentType categorises a payroll component.
type ComponentType string

const (
	ComponentEarning    ComponentType = "EARNING"
	ComponentDeduction  ComponentType = "DEDUCTION"
	ComponentTax        ComponentType = "TAX"
	ComponentBenefit    ComponentType = "BENEFIT"
	ComponentOvertime   ComponentType = "OVERTIME"
	ComponentBonus      ComponentType = "BONUS"
	ComponentCommission ComponentType = "COMMISSION"
)

// IsValid reports whether the component type is one of the known values.
func (t ComponentType) IsValid() bool {
	switch t {
	case ComponentEarning, ComponentDeduction, ComponentTax, ComponentBenefit,
		ComponentOvertime, ComponentBonus, ComponentCommission:
		return true
	}
	return false
}

// IsEarning reports whether items of this type add to gross pay.
func (t ComponentType) IsEarning() bool {
	switch t {
	case ComponentEarning, ComponentOvertime, ComponentBonus, ComponentCommission:
		return true
	}
	return false
}

// CalculationType defines how a component's amount is derived.
// This is a closed set; resolution fails on anything else.
type CalculationType string

const (
	CalcFixed      CalculationType = "FIXED"
	CalcPercentage CalculationType = "PERCENTAGE"
	CalcHourly     CalculationType = "HOURLY"
	CalcDaily      CalculationType = "DAILY"
	CalcMonthly    CalculationType = "MONTHLY"
	CalcAnnual     CalculationType = "ANNUAL"
)

// IsValid reports whether the calculation type is one of the known values.
func (t CalculationType) IsValid() bool {
	switch t {
	case CalcFixed, CalcPercentage, CalcHourly, CalcDaily, CalcMonthly, CalcAnnual:
		return true
	}
	return false
}

// PayrollComponent is a named, typed calculation rule from the component
// catalog. Components are immutable once referenced by a posted payroll item;
// edits create a new version linked via PreviousVersionID.
type PayrollComponent struct {
	ComponentID       string          `json:"componentID"`    // Primary key (UUID)
	OrganizationID    string          `json:"organizationID"` // Owning organization
	Name              string          `json:"name"`
	ComponentType     ComponentType   `json:"componentType"`
	CalculationType   CalculationType `json:"calculationType"`
	Amount            decimal.Decimal `json:"amount"`     // Fixed/hourly/daily/monthly/annual amount
	Percentage        decimal.Decimal `json:"percentage"` // Fraction of gross-so-far, e.g. 0.05
	IsTaxable         bool            `json:"isTaxable"`
	IsPretax          bool            `json:"isPretax"`
	IsMandatory       bool            `json:"isMandatory"`
	SortOrder         int             `json:"sortOrder"` // Evaluation order; significant for percentage components
	IsActive          bool            `json:"isActive"`
	PreviousVersionID string          `json:"previousVersionID,omitempty"` // Set when this supersedes an earlier version
	AuditFields
}
