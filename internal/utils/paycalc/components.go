package paycalc

import (
	"fmt"

	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ResolveContext carries the running state a component amount may depend on.
// GrossSoFar is the gross pay accumulated from strictly lower sort orders;
// percentage components must only ever see that partial total.
type ResolveContext struct {
	GrossSoFar     decimal.Decimal
	HoursWorked    decimal.Decimal
	BaseRate       decimal.Decimal
	WorkdayHours   decimal.Decimal // Nominal hours per workday, from configuration
	PeriodsPerYear int             // From the configured pay frequency
}

// ResolveComponentAmount computes a component's amount for one employee in
// one period. The calculation type set is closed; anything else fails with
// domain.ErrUnknownCalculationType. The result is rounded to the currency
// scale per the engine rounding policy.
func ResolveComponentAmount(c domain.PayrollComponent, rc ResolveContext) (decimal.Decimal, error) {
	var amount decimal.Decimal
	switch c.CalculationType {
	case domain.CalcFixed:
		amount = c.Amount
	case domain.CalcPercentage:
		amount = rc.GrossSoFar.Mul(c.Percentage)
	case domain.CalcHourly:
		amount = rc.HoursWorked.Mul(c.Amount)
	case domain.CalcDaily:
		if rc.WorkdayHours.IsZero() {
			return decimal.Zero, fmt.Errorf("workday hours must be configured for daily component %s", c.ComponentID)
		}
		days := rc.HoursWorked.Div(rc.WorkdayHours)
		amount = days.Mul(c.Amount)
	case domain.CalcMonthly:
		// Monthly amounts are already period-scoped for the configured frequency.
		amount = c.Amount
	case domain.CalcAnnual:
		if rc.PeriodsPerYear <= 0 {
			return decimal.Zero, fmt.Errorf("periods per year must be positive for annual component %s", c.ComponentID)
		}
		amount = c.Amount.DivRound(decimal.NewFromInt(int64(rc.PeriodsPerYear)), domain.InternalScale)
	default:
		return decimal.Zero, fmt.Errorf("%w: %q on component %s", domain.ErrUnknownCalculationType, c.CalculationType, c.ComponentID)
	}
	return domain.RoundToCurrency(amount), nil
}
