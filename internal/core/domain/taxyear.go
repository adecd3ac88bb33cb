package domain

import "github.com/shopspring/decimal"

// TaxBracket is one band of a progressive schedule. Brackets are contiguous,
// non-overlapping and sorted ascending by Lower; the top bracket has no upper
// bound (Upper is nil).
type TaxBracket struct {
	Lower decimal.Decimal  `json:"lower"`
	Upper *decimal.Decimal `json:"upper,omitempty"` // Nil for the unbounded top bracket
	Rate  decimal.Decimal  `json:"rate"`
}

// FlatContribution is a flat-rate levy applied to gross pay up to a wage base
// cap (social insurance, health levy).
type FlatContribution struct {
	Name        string           `json:"name"`
	Rate        decimal.Decimal  `json:"rate"`
	WageBaseCap *decimal.Decimal `json:"wageBaseCap,omitempty"` // Nil means uncapped
}

// TaxYear is a per-organization, per-calendar-year snapshot of tax
// parameters. It is immutable once any payroll run references it; current-year
// rate changes never retroactively alter a posted run.
type TaxYear struct {
	TaxYearID          string             `json:"taxYearID"`      // Primary key (UUID)
	OrganizationID     string             `json:"organizationID"` // Owning organization
	Year               int                `json:"year"`
	StandardDeduction  decimal.Decimal    `json:"standardDeduction"`
	ExemptionAmount    decimal.Decimal    `json:"exemptionAmount"` // Per claimed exemption
	FederalBrackets    []TaxBracket       `json:"federalBrackets"`
	StateBrackets      []TaxBracket       `json:"stateBrackets"`
	Contributions      []FlatContribution `json:"contributions"`
	SurchargeRate      decimal.Decimal    `json:"surchargeRate"`      // Additional rate above the surcharge threshold
	SurchargeThreshold decimal.Decimal    `json:"surchargeThreshold"` // Gross pay above this attracts the surcharge
	IsActive           bool               `json:"isActive"`
	AuditFields
}

// ValidateBrackets checks that a schedule is contiguous, sorted and ends in an
// unbounded bracket. Used on tax year creation, before the snapshot is frozen.
func ValidateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return nil
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return ErrNegativeBracketRate
		}
		if i == len(brackets)-1 {
			if b.Upper != nil {
				return ErrUnboundedTopBracket
			}
			continue
		}
		if b.Upper == nil {
			return ErrUnboundedTopBracket
		}
		if !brackets[i+1].Lower.Equal(*b.Upper) {
			return ErrBracketGap
		}
		if b.Upper.LessThanOrEqual(b.Lower) {
			return ErrBracketGap
		}
	}
	return nil
}
