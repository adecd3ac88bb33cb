package collaborators

import (
	"context"
	"log/slog"

	"github.com/paycove/payroll_engine/internal/core/domain"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
)

// SlogNotifier records run lifecycle events in the structured log. It is the
// default notifier until a messaging integration is configured.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(logger *slog.Logger) portssvc.RunNotifier {
	return &SlogNotifier{logger: logger}
}

var _ portssvc.RunNotifier = (*SlogNotifier)(nil)

func (n *SlogNotifier) OnRunApproved(ctx context.Context, run domain.PayrollRun) {
	n.logger.Info("Payroll run approved",
		slog.String("run_id", run.RunID),
		slog.String("approved_by", run.ApprovedBy),
		slog.String("total_net_pay", run.TotalNetPay.String()))
}

func (n *SlogNotifier) OnRunPaid(ctx context.Context, run domain.PayrollRun) {
	n.logger.Info("Payroll run paid",
		slog.String("run_id", run.RunID),
		slog.Int("total_employees", run.TotalEmployees),
		slog.String("total_net_pay", run.TotalNetPay.String()))
}

func (n *SlogNotifier) OnRunFailed(ctx context.Context, run domain.PayrollRun, errorLog []domain.RunError) {
	n.logger.Error("Payroll run failed",
		slog.String("run_id", run.RunID),
		slog.Int("error_count", len(errorLog)))
}
