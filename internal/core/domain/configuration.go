package domain

import "github.com/shopspring/decimal"

// PayFrequency defines how often payroll runs for an organization.
type PayFrequency string

const (
	FrequencyWeekly    PayFrequency = "WEEKLY"
	FrequencyBiweekly  PayFrequency = "BIWEEKLY"
	FrequencyMonthly   PayFrequency = "MONTHLY"
	FrequencyQuarterly PayFrequency = "QUARTERLY"
)

// IsValid reports whether the pay frequency is one of the known values.
func (f PayFrequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// PeriodsPerYear returns the number of pay periods per year for the frequency.
// Returns 0 for an unknown frequency; callers must validate first.
func (f PayFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	}
	return 0
}

// PayrollConfiguration holds the per-organization payroll settings. There is
// one configuration per organization per tax year; it is never deleted, only
// superseded by a configuration for a later year.
type PayrollConfiguration struct {
	ConfigID               string          `json:"configID"`       // Primary key (UUID)
	OrganizationID         string          `json:"organizationID"` // Owning organization
	TaxYear                int             `json:"taxYear"`
	CurrencyCode           string          `json:"currencyCode"`
	PayFrequency           PayFrequency    `json:"payFrequency"`
	OvertimeMultiplier     decimal.Decimal `json:"overtimeMultiplier"`   // Default 1.5
	DoubleTimeMultiplier   decimal.Decimal `json:"doubleTimeMultiplier"` // Applied above DoubleTimeThreshold
	DoubleTimeThreshold    decimal.Decimal `json:"doubleTimeThreshold"`  // Overtime hours beyond this earn double time
	WorkdayHours           decimal.Decimal `json:"workdayHours"`         // Nominal hours per workday, default 8
	AutoProcess            bool            `json:"autoProcess"`
	RequireApproval        bool            `json:"requireApproval"`
	SegregateDuties        bool            `json:"segregateDuties"` // Approver must differ from preparer
	AllowManualAdjustments bool            `json:"allowManualAdjustments"`
	AuditFields
}

// DefaultConfiguration returns a configuration with the engine defaults for
// the given organization and year.
func DefaultConfiguration(organizationID string, year int) PayrollConfiguration {
	return PayrollConfiguration{
		OrganizationID:         organizationID,
		TaxYear:                year,
		CurrencyCode:           "USD",
		PayFrequency:           FrequencyBiweekly,
		OvertimeMultiplier:     decimal.NewFromFloat(1.5),
		DoubleTimeMultiplier:   decimal.NewFromInt(2),
		DoubleTimeThreshold:    decimal.NewFromInt(20),
		WorkdayHours:           decimal.NewFromInt(8),
		RequireApproval:        true,
		AllowManualAdjustments: true,
	}
}
