package collaborators

import (
	"context"

	"github.com/shopspring/decimal"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
)

// FixedHoursSource reports the same hours for every employee. Used when no
// time-tracking service is configured, typically for all-salaried
// organizations where reported hours only matter for hourly components.
type FixedHoursSource struct {
	hours portssvc.ReportedHours
}

// NewFixedHoursSource creates an attendance source reporting the given hours
// and no overtime.
func NewFixedHoursSource(hoursWorked decimal.Decimal) portssvc.AttendanceSource {
	return &FixedHoursSource{hours: portssvc.ReportedHours{HoursWorked: hoursWorked, OvertimeHours: decimal.Zero}}
}

var _ portssvc.AttendanceSource = (*FixedHoursSource)(nil)

// GetReportedHours implements portssvc.AttendanceSource.
func (s *FixedHoursSource) GetReportedHours(ctx context.Context, employeeID, runID string) (portssvc.ReportedHours, error) {
	return s.hours, nil
}

// ZeroSalesSource reports zero sales for every employee. Used when no sales
// service is configured.
type ZeroSalesSource struct{}

// NewZeroSalesSource creates a sales source that always reports zero.
func NewZeroSalesSource() portssvc.SalesSource {
	return &ZeroSalesSource{}
}

var _ portssvc.SalesSource = (*ZeroSalesSource)(nil)

// GetReportedSales implements portssvc.SalesSource.
func (s *ZeroSalesSource) GetReportedSales(ctx context.Context, employeeID, runID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
