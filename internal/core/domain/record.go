package domain

import "github.com/shopspring/decimal"

// EmployeePayrollRecord is the per-employee rollup for one run. Its three
// money fields are derived from the employee's items and approved
// adjustments; they are recomputed on every mutation and never set directly.
type EmployeePayrollRecord struct {
	RecordID        string          `json:"recordID"` // Primary key (UUID)
	RunID           string          `json:"runID"`
	EmployeeID      string          `json:"employeeID"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalTaxes      decimal.Decimal `json:"totalTaxes"`
	NetPay          decimal.Decimal `json:"netPay"`
	HoursWorked     decimal.Decimal `json:"hoursWorked"`
	OvertimeHours   decimal.Decimal `json:"overtimeHours"`
	IsVoid          bool            `json:"isVoid"` // Set when the owning run is cancelled
	AuditFields
}

// ComputeRecord derives a record's money fields from the employee's items and
// approved adjustments. Void items are excluded. Positive approved
// adjustments add to gross pay; negative ones add to deductions.
func ComputeRecord(items []PayrollItem, adjustments []PayrollAdjustment) (gross, deductions, taxes, net decimal.Decimal) {
	gross = decimal.Zero
	deductions = decimal.Zero
	taxes = decimal.Zero
	for _, it := range items {
		if it.IsVoid {
			continue
		}
		switch {
		case it.ItemType.IsEarning():
			gross = gross.Add(it.Amount)
		case it.ItemType == ComponentTax:
			taxes = taxes.Add(it.Amount)
		default:
			deductions = deductions.Add(it.Amount)
		}
	}
	for _, adj := range adjustments {
		if adj.Status != AdjustmentApproved {
			continue
		}
		if adj.IsPositive {
			gross = gross.Add(adj.Amount)
		} else {
			deductions = deductions.Add(adj.Amount)
		}
	}
	net = gross.Sub(deductions).Sub(taxes)
	return gross, deductions, taxes, net
}
