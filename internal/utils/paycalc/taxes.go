package paycalc

import (
	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TaxLine is one computed tax amount with its display name.
type TaxLine struct {
	Name   string
	Amount decimal.Decimal
}

// EvaluateBrackets computes progressive tax over a bracket schedule: each
// bracket taxes the clamped portion of taxable income falling inside it.
// The schedule must be contiguous, sorted ascending and end unbounded
// (validated at tax year creation).
func EvaluateBrackets(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, b := range brackets {
		if taxableIncome.LessThanOrEqual(b.Lower) {
			break
		}
		upper := taxableIncome
		if b.Upper != nil && b.Upper.LessThan(upper) {
			upper = *b.Upper
		}
		portion := upper.Sub(b.Lower)
		if portion.GreaterThan(decimal.Zero) {
			total = total.Add(portion.Mul(b.Rate))
		}
	}
	return domain.RoundToCurrency(total)
}

// TaxableIncome applies the standard deduction and per-exemption allowance.
// Never negative.
func TaxableIncome(grossPay decimal.Decimal, ty domain.TaxYear, exemptions int) decimal.Decimal {
	taxable := grossPay.
		Sub(ty.StandardDeduction).
		Sub(ty.ExemptionAmount.Mul(decimal.NewFromInt(int64(exemptions))))
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// ComputeTaxes evaluates the full statutory tax set for one employee in one
// period against an immutable tax year snapshot: federal and state
// progressive schedules on gross pay net of pre-tax deductions, flat-rate
// contributions capped at their wage bases, a surcharge above the surcharge
// threshold, and the employee's elected additional withholding.
func ComputeTaxes(ty domain.TaxYear, grossPay, pretaxDeductions decimal.Decimal, federalExemptions, stateExemptions int, additionalWithholding decimal.Decimal) []TaxLine {
	taxBase := grossPay.Sub(pretaxDeductions)
	if taxBase.IsNegative() {
		taxBase = decimal.Zero
	}

	var lines []TaxLine
	if federal := EvaluateBrackets(TaxableIncome(taxBase, ty, federalExemptions), ty.FederalBrackets); federal.IsPositive() {
		lines = append(lines, TaxLine{Name: "Federal Income Tax", Amount: federal})
	}
	if state := EvaluateBrackets(TaxableIncome(taxBase, ty, stateExemptions), ty.StateBrackets); state.IsPositive() {
		lines = append(lines, TaxLine{Name: "State Income Tax", Amount: state})
	}

	// Flat contributions apply to gross pay, capped at each wage base.
	for _, c := range ty.Contributions {
		base := grossPay
		if c.WageBaseCap != nil && c.WageBaseCap.LessThan(base) {
			base = *c.WageBaseCap
		}
		amount := domain.RoundToCurrency(base.Mul(c.Rate))
		if amount.IsPositive() {
			lines = append(lines, TaxLine{Name: c.Name, Amount: amount})
		}
	}

	// Surcharge on the portion of gross pay above the threshold.
	if ty.SurchargeRate.IsPositive() && grossPay.GreaterThan(ty.SurchargeThreshold) {
		excess := grossPay.Sub(ty.SurchargeThreshold)
		amount := domain.RoundToCurrency(excess.Mul(ty.SurchargeRate))
		if amount.IsPositive() {
			lines = append(lines, TaxLine{Name: "Additional Surcharge", Amount: amount})
		}
	}

	if additionalWithholding.IsPositive() {
		lines = append(lines, TaxLine{Name: "Additional Withholding", Amount: domain.RoundToCurrency(additionalWithholding)})
	}
	return lines
}
