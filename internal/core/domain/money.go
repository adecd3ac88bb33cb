package domain

import "github.com/shopspring/decimal"

// Monetary rounding policy.
//
// All monetary values are shopspring decimals. Intermediate arithmetic
// (rate × quantity, percentage × base) is carried at InternalScale and
// rounded to CurrencyScale with banker's rounding (round-half-even) at the
// point of persistence. This is the single rounding policy for the whole
// engine; no other rounding mode may be used for money.
const (
	// CurrencyScale is the display/persistence scale for monetary amounts.
	CurrencyScale int32 = 2
	// InternalScale is the scale used for intermediate products before rounding.
	InternalScale int32 = 4
)

// RoundToCurrency rounds an amount to the currency scale using banker's rounding.
func RoundToCurrency(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(CurrencyScale)
}

// RoundInternal rounds an intermediate value to the internal working scale
// using banker's rounding.
func RoundInternal(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(InternalScale)
}
