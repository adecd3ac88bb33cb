package collaborators

import (
	"context"
	"log/slog"

	"github.com/paycove/payroll_engine/internal/core/domain"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
)

// LogDisburser acknowledges disbursement by logging each record. It stands in
// for the banking integration in development and test environments; payment
// in production goes through a real Disburser implementation.
type LogDisburser struct {
	logger *slog.Logger
}

// NewLogDisburser creates a disburser writing to the given logger.
func NewLogDisburser(logger *slog.Logger) portssvc.Disburser {
	return &LogDisburser{logger: logger}
}

var _ portssvc.Disburser = (*LogDisburser)(nil)

// Disburse implements portssvc.Disburser.
func (d *LogDisburser) Disburse(ctx context.Context, run domain.PayrollRun, records []domain.EmployeePayrollRecord) error {
	for _, rec := range records {
		d.logger.Info("Disbursing net pay",
			slog.String("run_id", run.RunID),
			slog.String("employee_id", rec.EmployeeID),
			slog.String("net_pay", rec.NetPay.String()))
	}
	return nil
}
