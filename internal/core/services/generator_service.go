package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/utils/paycalc"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownPayType = errors.New("employee pay profile has an unknown pay type")
	ErrNegativeHours  = errors.New("reported hours must not be negative")
	ErrMissingTaxYear = errors.New("run has no tax year snapshot")
	ErrInvalidCatalog = errors.New("component catalog contains an invalid component")
	ErrPeriodsPerYear = errors.New("pay frequency yields no periods per year")
)

// Sort orders for synthetic items, kept below every catalog component so
// percentage components always see base pay and overtime in their gross.
const (
	sortOrderBasePay  = -30
	sortOrderOvertime = -20
	sortOrderTaxBase  = 1000 // Tax items are appended after all components
)

// generatorService expands one employee's pay profile, the component catalog
// and reported time into concrete payroll items. It is pure computation: all
// inputs arrive as snapshots and no writes happen here.
type generatorService struct{}

// NewGeneratorService creates the pay item generator.
func NewGeneratorService() portssvc.GeneratorSvc {
	return &generatorService{}
}

var _ portssvc.GeneratorSvc = (*generatorService)(nil)

// GenerateForEmployee implements portssvc.GeneratorSvc.
func (g *generatorService) GenerateForEmployee(ctx context.Context, in dto.GenerationInput) (*dto.GenerationResult, error) {
	if in.HoursWorked.IsNegative() || in.OvertimeHours.IsNegative() {
		return nil, fmt.Errorf("%w: employee %s", ErrNegativeHours, in.Profile.EmployeeID)
	}
	if in.TaxYear.TaxYearID == "" {
		return nil, ErrMissingTaxYear
	}
	periodsPerYear := in.Config.PayFrequency.PeriodsPerYear()
	if periodsPerYear == 0 {
		return nil, fmt.Errorf("%w: %q", ErrPeriodsPerYear, in.Config.PayFrequency)
	}

	audit := domain.NewAuditFields(in.UserID, in.Now)
	newItem := func(name string, itemType domain.ComponentType, qty, rate decimal.Decimal, sortOrder int) domain.PayrollItem {
		return domain.PayrollItem{
			ItemID:        uuid.NewString(),
			RunID:         in.Run.RunID,
			EmployeeID:    in.Profile.EmployeeID,
			ComponentName: name,
			ItemType:      itemType,
			Quantity:      qty,
			Rate:          rate,
			Amount:        domain.RoundToCurrency(qty.Mul(rate)),
			SortOrder:     sortOrder,
			IsTaxable:     true,
			AuditFields:   audit,
		}
	}

	var items []domain.PayrollItem
	gross := decimal.Zero

	// 1. Base earning from the pay basis.
	base, err := g.baseEarningItem(in, newItem)
	if err != nil {
		return nil, err
	}
	if base != nil {
		items = append(items, *base)
		gross = gross.Add(base.Amount)
	}

	// 2. Overtime, priced per configured tier.
	for i, tier := range paycalc.SplitOvertime(in.Profile.HourlyRate, in.OvertimeHours, in.Config) {
		it := newItem(tier.Name, domain.ComponentOvertime, tier.Hours, tier.Rate, sortOrderOvertime+i*10)
		items = append(items, it)
		gross = gross.Add(it.Amount)
	}

	// 3–5. Catalog components in ascending sort order. Earnings accumulate
	// into gross as they resolve; a percentage component therefore only ever
	// sees gross from strictly lower sort orders.
	components := append([]domain.PayrollComponent(nil), in.Components...)
	sort.SliceStable(components, func(i, j int) bool { return components[i].SortOrder < components[j].SortOrder })

	elected := make(map[string]bool, len(in.Profile.BenefitElections))
	for _, id := range in.Profile.BenefitElections {
		elected[id] = true
	}

	pretax := decimal.Zero
	for _, c := range components {
		if !c.IsActive {
			continue
		}
		if !c.IsMandatory && !elected[c.ComponentID] {
			continue
		}
		if !c.ComponentType.IsValid() {
			return nil, fmt.Errorf("%w: component %s has type %q", ErrInvalidCatalog, c.ComponentID, c.ComponentType)
		}
		amount, err := paycalc.ResolveComponentAmount(c, paycalc.ResolveContext{
			GrossSoFar:     gross,
			HoursWorked:    in.HoursWorked,
			BaseRate:       in.Profile.HourlyRate,
			WorkdayHours:   in.Config.WorkdayHours,
			PeriodsPerYear: periodsPerYear,
		})
		if err != nil {
			if errors.Is(err, domain.ErrUnknownCalculationType) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
			}
			return nil, err
		}
		// Zero-amount optional components are omitted; mandatory ones are
		// always emitted so the payslip shows them.
		if amount.IsZero() && !c.IsMandatory {
			continue
		}
		it := newItem(c.Name, c.ComponentType, decimal.NewFromInt(1), amount, c.SortOrder)
		it.ComponentID = c.ComponentID
		it.IsTaxable = c.IsTaxable
		it.IsPretax = c.IsPretax
		items = append(items, it)
		if c.ComponentType.IsEarning() {
			gross = gross.Add(it.Amount)
		} else if c.IsPretax {
			pretax = pretax.Add(it.Amount)
		}
	}

	// 4. Statutory taxes against the immutable tax year snapshot, with
	// pre-tax deductions subtracted from the bracket base first.
	taxLines := paycalc.ComputeTaxes(
		in.TaxYear,
		gross,
		pretax,
		in.Profile.FederalExemptions,
		in.Profile.StateExemptions,
		in.Profile.AdditionalWithholding,
	)
	for i, tl := range taxLines {
		it := newItem(tl.Name, domain.ComponentTax, decimal.NewFromInt(1), tl.Amount, sortOrderTaxBase+i)
		items = append(items, it)
	}

	// 6. Derived per-employee rollup.
	grossPay, deductions, taxes, net := domain.ComputeRecord(items, nil)
	record := domain.EmployeePayrollRecord{
		RecordID:        uuid.NewString(),
		RunID:           in.Run.RunID,
		EmployeeID:      in.Profile.EmployeeID,
		GrossPay:        grossPay,
		TotalDeductions: deductions,
		TotalTaxes:      taxes,
		NetPay:          net,
		HoursWorked:     in.HoursWorked,
		OvertimeHours:   in.OvertimeHours,
		AuditFields:     audit,
	}

	return &dto.GenerationResult{Items: items, Record: record}, nil
}

// baseEarningItem builds the pay-basis earning line. Salary and contract
// profiles earn the full-period amount; hourly profiles earn reported hours
// at the hourly rate; commission profiles earn the commission fraction of
// reported sales.
func (g *generatorService) baseEarningItem(in dto.GenerationInput, newItem func(string, domain.ComponentType, decimal.Decimal, decimal.Decimal, int) domain.PayrollItem) (*domain.PayrollItem, error) {
	one := decimal.NewFromInt(1)
	switch in.Profile.PayType {
	case domain.PaySalary:
		it := newItem("Base Salary", domain.ComponentEarning, one, in.Profile.BaseSalary, sortOrderBasePay)
		return &it, nil
	case domain.PayContract:
		it := newItem("Contract Pay", domain.ComponentEarning, one, in.Profile.BaseSalary, sortOrderBasePay)
		return &it, nil
	case domain.PayHourly:
		it := newItem("Regular Hours", domain.ComponentEarning, in.HoursWorked, in.Profile.HourlyRate, sortOrderBasePay)
		return &it, nil
	case domain.PayCommission:
		it := newItem("Commission", domain.ComponentCommission, in.ReportedSales, in.Profile.CommissionRate, sortOrderBasePay)
		return &it, nil
	}
	return nil, fmt.Errorf("%w: %q for employee %s", ErrUnknownPayType, in.Profile.PayType, in.Profile.EmployeeID)
}
