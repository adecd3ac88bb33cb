package paycalc

import (
	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OvertimeTier is one priced band of overtime: Hours at Rate.
type OvertimeTier struct {
	Name  string
	Hours decimal.Decimal
	Rate  decimal.Decimal
}

// SplitOvertime splits overtime hours into priced tiers: hours up to the
// double-time threshold at the overtime multiplier, the remainder at the
// double-time multiplier. Each tier's rate is the hourly rate times its
// multiplier, so item amounts satisfy the quantity × rate invariant.
func SplitOvertime(hourlyRate, overtimeHours decimal.Decimal, cfg domain.PayrollConfiguration) []OvertimeTier {
	if overtimeHours.LessThanOrEqual(decimal.Zero) || hourlyRate.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	regular := overtimeHours
	double := decimal.Zero
	if cfg.DoubleTimeThreshold.IsPositive() && overtimeHours.GreaterThan(cfg.DoubleTimeThreshold) {
		regular = cfg.DoubleTimeThreshold
		double = overtimeHours.Sub(cfg.DoubleTimeThreshold)
	}
	tiers := []OvertimeTier{{
		Name:  "Overtime",
		Hours: regular,
		Rate:  domain.RoundInternal(hourlyRate.Mul(cfg.OvertimeMultiplier)),
	}}
	if double.IsPositive() {
		tiers = append(tiers, OvertimeTier{
			Name:  "Double Time",
			Hours: double,
			Rate:  domain.RoundInternal(hourlyRate.Mul(cfg.DoubleTimeMultiplier)),
		})
	}
	return tiers
}

// ComputeOvertimePay prices overtime hours across the configured tiers and
// returns the rounded total.
func ComputeOvertimePay(hourlyRate, overtimeHours decimal.Decimal, cfg domain.PayrollConfiguration) decimal.Decimal {
	total := decimal.Zero
	for _, t := range SplitOvertime(hourlyRate, overtimeHours, cfg) {
		total = total.Add(domain.RoundToCurrency(t.Hours.Mul(t.Rate)))
	}
	return total
}
