package domain

import "github.com/shopspring/decimal"

// PayrollItem is one earning/deduction/tax/benefit line for one employee
// within one run. Amount must equal Quantity × Rate for quantity-based
// components, rounded per the engine rounding policy; this is a checked
// invariant, not a free field.
type PayrollItem struct {
	ItemID        string          `json:"itemID"` // Primary key (UUID)
	RunID         string          `json:"runID"`
	EmployeeID    string          `json:"employeeID"`
	ComponentID   string          `json:"componentID,omitempty"` // Empty for synthetic items (base pay, statutory taxes)
	ComponentName string          `json:"componentName"`
	ItemType      ComponentType   `json:"itemType"`
	Quantity      decimal.Decimal `json:"quantity"` // Hours/days for quantity-based items, 1 otherwise
	Rate          decimal.Decimal `json:"rate"`
	Amount        decimal.Decimal `json:"amount"`
	IsTaxable     bool            `json:"isTaxable"`
	IsPretax      bool            `json:"isPretax"`
	SortOrder     int             `json:"sortOrder"`
	IsVoid        bool            `json:"isVoid"` // Set when the owning run is cancelled or items are superseded
	AuditFields
}

// CheckAmount verifies the amount invariant: for quantity-based items the
// amount must equal quantity × rate rounded to the currency scale.
func (i *PayrollItem) CheckAmount() bool {
	expected := RoundToCurrency(i.Quantity.Mul(i.Rate))
	return i.Amount.Equal(expected)
}

// Sign returns +1 for earnings and -1 for deductions, taxes and benefits,
// matching each item's contribution to net pay.
func (i *PayrollItem) Sign() decimal.Decimal {
	if i.ItemType.IsEarning() {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}
