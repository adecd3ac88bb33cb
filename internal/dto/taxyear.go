package dto

import (
	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BracketInput is one progressive bracket in a tax year payload.
type BracketInput struct {
	Lower decimal.Decimal  `json:"lower"`
	Upper *decimal.Decimal `json:"upper,omitempty"` // Omit for the unbounded top bracket
	Rate  decimal.Decimal  `json:"rate" binding:"required"`
}

// ContributionInput is one flat-rate contribution in a tax year payload.
type ContributionInput struct {
	Name        string           `json:"name" binding:"required"`
	Rate        decimal.Decimal  `json:"rate" binding:"required"`
	WageBaseCap *decimal.Decimal `json:"wageBaseCap,omitempty"`
}

// CreateTaxYearRequest defines the payload for recording a tax year snapshot.
type CreateTaxYearRequest struct {
	Year               int                 `json:"year" binding:"required"`
	StandardDeduction  decimal.Decimal     `json:"standardDeduction"`
	ExemptionAmount    decimal.Decimal     `json:"exemptionAmount"`
	FederalBrackets    []BracketInput      `json:"federalBrackets" binding:"required"`
	StateBrackets      []BracketInput      `json:"stateBrackets"`
	Contributions      []ContributionInput `json:"contributions"`
	SurchargeRate      decimal.Decimal     `json:"surchargeRate"`
	SurchargeThreshold decimal.Decimal     `json:"surchargeThreshold"`
}

// TaxYearResponse defines the data returned for a tax year snapshot.
type TaxYearResponse struct {
	TaxYearID          string                    `json:"taxYearID"`
	Year               int                       `json:"year"`
	StandardDeduction  decimal.Decimal           `json:"standardDeduction"`
	ExemptionAmount    decimal.Decimal           `json:"exemptionAmount"`
	FederalBrackets    []domain.TaxBracket       `json:"federalBrackets"`
	StateBrackets      []domain.TaxBracket       `json:"stateBrackets"`
	Contributions      []domain.FlatContribution `json:"contributions"`
	SurchargeRate      decimal.Decimal           `json:"surchargeRate"`
	SurchargeThreshold decimal.Decimal           `json:"surchargeThreshold"`
}

// ToBrackets converts bracket inputs to domain brackets.
func ToBrackets(in []BracketInput) []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(in))
	for i, b := range in {
		out[i] = domain.TaxBracket{Lower: b.Lower, Upper: b.Upper, Rate: b.Rate}
	}
	return out
}

// ToContributions converts contribution inputs to domain contributions.
func ToContributions(in []ContributionInput) []domain.FlatContribution {
	out := make([]domain.FlatContribution, len(in))
	for i, c := range in {
		out[i] = domain.FlatContribution{Name: c.Name, Rate: c.Rate, WageBaseCap: c.WageBaseCap}
	}
	return out
}

// ToTaxYearResponse converts a domain.TaxYear to TaxYearResponse.
func ToTaxYearResponse(t *domain.TaxYear) TaxYearResponse {
	return TaxYearResponse{
		TaxYearID:          t.TaxYearID,
		Year:               t.Year,
		StandardDeduction:  t.StandardDeduction,
		ExemptionAmount:    t.ExemptionAmount,
		FederalBrackets:    t.FederalBrackets,
		StateBrackets:      t.StateBrackets,
		Contributions:      t.Contributions,
		SurchargeRate:      t.SurchargeRate,
		SurchargeThreshold: t.SurchargeThreshold,
	}
}
