package dto

import (
	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateConfigRequest defines the payload for updating the payroll
// configuration of an organization. Nil fields are left unchanged.
type UpdateConfigRequest struct {
	TaxYear                int              `json:"taxYear" binding:"required"`
	CurrencyCode           *string          `json:"currencyCode,omitempty"`
	PayFrequency           *string          `json:"payFrequency,omitempty"`
	OvertimeMultiplier     *decimal.Decimal `json:"overtimeMultiplier,omitempty"`
	DoubleTimeMultiplier   *decimal.Decimal `json:"doubleTimeMultiplier,omitempty"`
	DoubleTimeThreshold    *decimal.Decimal `json:"doubleTimeThreshold,omitempty"`
	WorkdayHours           *decimal.Decimal `json:"workdayHours,omitempty"`
	AutoProcess            *bool            `json:"autoProcess,omitempty"`
	RequireApproval        *bool            `json:"requireApproval,omitempty"`
	SegregateDuties        *bool            `json:"segregateDuties,omitempty"`
	AllowManualAdjustments *bool            `json:"allowManualAdjustments,omitempty"`
}

// ConfigResponse defines the data returned for a payroll configuration.
type ConfigResponse struct {
	ConfigID               string          `json:"configID"`
	TaxYear                int             `json:"taxYear"`
	CurrencyCode           string          `json:"currencyCode"`
	PayFrequency           string          `json:"payFrequency"`
	OvertimeMultiplier     decimal.Decimal `json:"overtimeMultiplier"`
	DoubleTimeMultiplier   decimal.Decimal `json:"doubleTimeMultiplier"`
	DoubleTimeThreshold    decimal.Decimal `json:"doubleTimeThreshold"`
	WorkdayHours           decimal.Decimal `json:"workdayHours"`
	AutoProcess            bool            `json:"autoProcess"`
	RequireApproval        bool            `json:"requireApproval"`
	SegregateDuties        bool            `json:"segregateDuties"`
	AllowManualAdjustments bool            `json:"allowManualAdjustments"`
}

// ToConfigResponse converts a domain.PayrollConfiguration to ConfigResponse.
func ToConfigResponse(c *domain.PayrollConfiguration) ConfigResponse {
	return ConfigResponse{
		ConfigID:               c.ConfigID,
		TaxYear:                c.TaxYear,
		CurrencyCode:           c.CurrencyCode,
		PayFrequency:           string(c.PayFrequency),
		OvertimeMultiplier:     c.OvertimeMultiplier,
		DoubleTimeMultiplier:   c.DoubleTimeMultiplier,
		DoubleTimeThreshold:    c.DoubleTimeThreshold,
		WorkdayHours:           c.WorkdayHours,
		AutoProcess:            c.AutoProcess,
		RequireApproval:        c.RequireApproval,
		SegregateDuties:        c.SegregateDuties,
		AllowManualAdjustments: c.AllowManualAdjustments,
	}
}
