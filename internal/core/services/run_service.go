package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portsrepo "github.com/paycove/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrPeriodInvalid      = errors.New("period end must be after period start")
	ErrNoEligibleEmployee = errors.New("run requires at least one eligible employee")
	ErrRunNotMutable      = errors.New("run no longer accepts item or adjustment mutation")
	ErrSelfApproval       = errors.New("approver must differ from the preparer")
	ErrRunCancelledMidway = errors.New("run was cancelled during generation")
)

// generationParallelism bounds concurrent per-employee item generation.
const generationParallelism = 8

// runService drives the payroll run lifecycle: creation, batch item
// generation, total aggregation, approval gating, payment and cancellation.
type runService struct {
	runRepo       portsrepo.RunRepositoryWithTx
	componentRepo portsrepo.ComponentRepositoryFacade
	profileRepo   portsrepo.ProfileRepositoryFacade
	taxYearRepo   portsrepo.TaxYearRepositoryFacade
	configRepo    portsrepo.ConfigRepositoryFacade
	generator     portssvc.GeneratorSvc
	directory     portssvc.EmployeeDirectory
	attendance    portssvc.AttendanceSource
	sales         portssvc.SalesSource
	disburser     portssvc.Disburser
	notifier      portssvc.RunNotifier
}

// NewRunService creates a new run lifecycle service.
func NewRunService(
	runRepo portsrepo.RunRepositoryWithTx,
	componentRepo portsrepo.ComponentRepositoryFacade,
	profileRepo portsrepo.ProfileRepositoryFacade,
	taxYearRepo portsrepo.TaxYearRepositoryFacade,
	configRepo portsrepo.ConfigRepositoryFacade,
	generator portssvc.GeneratorSvc,
	directory portssvc.EmployeeDirectory,
	attendance portssvc.AttendanceSource,
	sales portssvc.SalesSource,
	disburser portssvc.Disburser,
	notifier portssvc.RunNotifier,
) portssvc.RunSvcFacade {
	return &runService{
		runRepo:       runRepo,
		componentRepo: componentRepo,
		profileRepo:   profileRepo,
		taxYearRepo:   taxYearRepo,
		configRepo:    configRepo,
		generator:     generator,
		directory:     directory,
		attendance:    attendance,
		sales:         sales,
		disburser:     disburser,
		notifier:      notifier,
	}
}

var _ portssvc.RunSvcFacade = (*runService)(nil)

// CreateRun implements portssvc.RunSvcFacade.
func (s *runService) CreateRun(ctx context.Context, organizationID string, req dto.CreateRunRequest, creatorUserID string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPeriodInvalid)
	}
	runType := domain.RunType(req.RunType)
	if !runType.IsValid() {
		return nil, fmt.Errorf("%w: unknown run type %q", apperrors.ErrValidation, req.RunType)
	}

	taxYear, err := s.taxYearRepo.FindActiveTaxYear(ctx, organizationID, req.TaxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tax year %d: %w", req.TaxYear, err)
	}

	now := time.Now().UTC()
	run := domain.PayrollRun{
		RunID:           uuid.NewString(),
		OrganizationID:  organizationID,
		PeriodStart:     req.PeriodStart,
		PeriodEnd:       req.PeriodEnd,
		RunType:         runType,
		Status:          domain.RunDraft,
		TaxYearID:       taxYear.TaxYearID,
		TotalGrossPay:   decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalTaxes:      decimal.Zero,
		TotalNetPay:     decimal.Zero,
		AuditFields:     domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate run rejected",
				slog.String("organization_id", organizationID),
				slog.Time("period_start", req.PeriodStart),
				slog.String("run_type", req.RunType))
			return nil, fmt.Errorf("%w: a non-cancelled run already exists for this period and run type", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	logger.Info("Payroll run created", slog.String("run_id", run.RunID), slog.String("organization_id", organizationID))
	return &run, nil
}

// GetRun implements portssvc.RunSvcFacade.
func (s *runService) GetRun(ctx context.Context, organizationID, runID string) (*domain.PayrollRun, error) {
	run, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find run %s: %w", runID, err)
	}
	if run.OrganizationID != organizationID {
		// Obscure existence across organizations.
		return nil, apperrors.ErrNotFound
	}
	return run, nil
}

// ListRuns implements portssvc.RunSvcFacade.
func (s *runService) ListRuns(ctx context.Context, organizationID string, params dto.ListRunsParams) (*dto.ListRunsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	runs, nextToken, err := s.runRepo.ListRunsByOrganization(ctx, organizationID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	resp := &dto.ListRunsResponse{
		Runs:      make([]dto.RunResponse, len(runs)),
		NextToken: nextToken,
	}
	for i := range runs {
		resp.Runs[i] = dto.ToRunResponse(&runs[i])
	}
	return resp, nil
}

// ProcessRun implements portssvc.RunSvcFacade. It generates items for every
// active employee, isolates per-employee failures into the run error log,
// recomputes totals and moves the run to REVIEW. A fatal error rolls the run
// back to DRAFT with no partial totals.
func (s *runService) ProcessRun(ctx context.Context, organizationID, runID string, userID string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.GetRun(ctx, organizationID, runID)
	if err != nil {
		return nil, err
	}
	// Re-processing an interrupted PROCESSING run is allowed and idempotent;
	// items are replaced per employee, never duplicated.
	if run.Status != domain.RunDraft && run.Status != domain.RunProcessing {
		return nil, fmt.Errorf("%w: cannot process a %s run", apperrors.ErrInvalidTransition, run.Status)
	}

	config, err := s.configRepo.FindLatestConfiguration(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll configuration: %w", err)
	}
	taxYear, err := s.taxYearRepo.FindTaxYearByID(ctx, run.TaxYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax year snapshot: %w", err)
	}
	components, err := s.componentRepo.ListComponentsByOrganization(ctx, organizationID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load component catalog: %w", err)
	}

	employees, err := s.directory.GetActiveEmployees(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoEligibleEmployee)
	}

	if run.Status == domain.RunDraft {
		run.Status = domain.RunProcessing
		run.PreparedBy = userID
		run.Touch(userID, time.Now().UTC())
		if err := s.runRepo.SaveRunState(ctx, *run, run.Version); err != nil {
			return nil, fmt.Errorf("failed to start processing: %w", err)
		}
		run.Version++
	}

	empErrs, fatal := s.generateAll(ctx, run, config, taxYear, components, employees, userID)
	if fatal != nil {
		return s.rollbackToDraft(ctx, run, userID, fatal)
	}

	if len(empErrs) > 0 {
		if err := s.runRepo.AppendRunErrors(ctx, runID, empErrs); err != nil {
			return s.rollbackToDraft(ctx, run, userID, err)
		}
		run.ErrorLog = append(run.ErrorLog, empErrs...)
	}

	updated, _, err := s.recomputeRun(ctx, run, domain.RunReview, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return s.rollbackToDraft(ctx, run, userID, err)
	}

	logger.Info("Payroll run processed",
		slog.String("run_id", runID),
		slog.Int("employees", updated.TotalEmployees),
		slog.Int("errors", len(empErrs)))
	return updated, nil
}

// generateAll fans per-employee generation out across a bounded worker group.
// Employees are independent during generation; each worker writes only its
// own employee's rows. Returned RunError entries are per-employee and
// non-fatal; a non-nil second return aborts the batch.
func (s *runService) generateAll(
	ctx context.Context,
	run *domain.PayrollRun,
	config *domain.PayrollConfiguration,
	taxYear *domain.TaxYear,
	components []domain.PayrollComponent,
	employees []string,
	userID string,
) ([]domain.RunError, error) {
	now := time.Now().UTC()

	var mu sync.Mutex
	var empErrs []domain.RunError
	recordErr := func(employeeID, code string, err error) {
		mu.Lock()
		defer mu.Unlock()
		empErrs = append(empErrs, domain.RunError{
			EmployeeID: employeeID,
			Code:       code,
			Message:    err.Error(),
			OccurredAt: time.Now().UTC(),
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generationParallelism)

	// skip records the per-employee error and voids the employee's rows from
	// any earlier pass. Without the void, a regeneration that skips an
	// employee would fold their stale items and record into the run totals.
	skip := func(employeeID, code string, cause error) error {
		recordErr(employeeID, code, cause)
		if err := s.runRepo.ReplaceEmployeeItems(gctx, run.RunID, employeeID, nil); err != nil {
			return fmt.Errorf("failed to void items for skipped employee %s: %w", employeeID, err)
		}
		if err := s.runRepo.VoidEmployeeRecord(gctx, run.RunID, employeeID); err != nil {
			return fmt.Errorf("failed to void record for skipped employee %s: %w", employeeID, err)
		}
		return nil
	}

	for _, employeeID := range employees {
		employeeID := employeeID
		g.Go(func() error {
			// Observe cancellation before touching this employee's rows.
			status, err := s.runRepo.FindRunStatus(gctx, run.RunID)
			if err != nil {
				return fmt.Errorf("failed to check run status: %w", err)
			}
			if status == domain.RunCancelled {
				return ErrRunCancelledMidway
			}

			profile, err := s.profileRepo.FindActiveProfile(gctx, run.OrganizationID, employeeID, run.PeriodEnd)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return skip(employeeID, domain.RunErrProfileMissing, fmt.Errorf("no active pay profile for employee %s", employeeID))
				}
				return fmt.Errorf("failed to load pay profile for %s: %w", employeeID, err)
			}

			hours, err := s.attendance.GetReportedHours(gctx, employeeID, run.RunID)
			if err != nil {
				return skip(employeeID, domain.RunErrDataUnavailable, fmt.Errorf("reported hours unavailable: %v", err))
			}

			reportedSales := decimal.Zero
			if profile.PayType == domain.PayCommission {
				reportedSales, err = s.sales.GetReportedSales(gctx, employeeID, run.RunID)
				if err != nil {
					return skip(employeeID, domain.RunErrDataUnavailable, fmt.Errorf("reported sales unavailable: %v", err))
				}
			}

			result, err := s.generator.GenerateForEmployee(gctx, dto.GenerationInput{
				Run:           *run,
				Profile:       *profile,
				Config:        *config,
				TaxYear:       *taxYear,
				Components:    components,
				HoursWorked:   hours.HoursWorked,
				OvertimeHours: hours.OvertimeHours,
				ReportedSales: reportedSales,
				UserID:        userID,
				Now:           now,
			})
			if err != nil {
				return skip(employeeID, domain.RunErrDataUnavailable, err)
			}

			// Re-check after computation so a cancellation observed here
			// prevents any write for this employee.
			status, err = s.runRepo.FindRunStatus(gctx, run.RunID)
			if err != nil {
				return fmt.Errorf("failed to check run status: %w", err)
			}
			if status == domain.RunCancelled {
				return ErrRunCancelledMidway
			}

			if err := s.runRepo.ReplaceEmployeeItems(gctx, run.RunID, employeeID, result.Items); err != nil {
				return fmt.Errorf("failed to write items for %s: %w", employeeID, err)
			}
			if err := s.runRepo.UpsertRecord(gctx, result.Record); err != nil {
				return fmt.Errorf("failed to write record for %s: %w", employeeID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return empErrs, err
	}
	return empErrs, nil
}

// recomputeRun derives every employee record and the run totals from the
// run's current items and approved adjustments, persists the records, and
// compare-and-swaps the run into nextStatus. Totals are never carried over;
// they are recomputed from scratch on every call.
func (s *runService) recomputeRun(ctx context.Context, run *domain.PayrollRun, nextStatus domain.RunStatus, userID string) (*domain.PayrollRun, []domain.EmployeePayrollRecord, error) {
	if !run.Status.CanTransitionTo(nextStatus) && run.Status != nextStatus {
		return nil, nil, fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidTransition, run.Status, nextStatus)
	}

	items, err := s.runRepo.FindItemsByRunID(ctx, run.RunID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load items: %w", err)
	}
	adjustments, err := s.runRepo.FindAdjustmentsByRunID(ctx, run.RunID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load adjustments: %w", err)
	}
	records, err := s.runRepo.FindRecordsByRunID(ctx, run.RunID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}

	itemsByEmployee := make(map[string][]domain.PayrollItem)
	for _, it := range items {
		itemsByEmployee[it.EmployeeID] = append(itemsByEmployee[it.EmployeeID], it)
	}
	adjsByEmployee := make(map[string][]domain.PayrollAdjustment)
	for _, adj := range adjustments {
		adjsByEmployee[adj.EmployeeID] = append(adjsByEmployee[adj.EmployeeID], adj)
	}

	now := time.Now().UTC()
	totalGross, totalDeductions, totalTaxes, totalNet := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for i := range records {
		rec := &records[i]
		if rec.IsVoid {
			continue
		}
		gross, deductions, taxes, net := domain.ComputeRecord(itemsByEmployee[rec.EmployeeID], adjsByEmployee[rec.EmployeeID])
		rec.GrossPay = gross
		rec.TotalDeductions = deductions
		rec.TotalTaxes = taxes
		rec.NetPay = net
		rec.Touch(userID, now)
		if err := s.runRepo.UpsertRecord(ctx, *rec); err != nil {
			return nil, nil, fmt.Errorf("failed to persist record for %s: %w", rec.EmployeeID, err)
		}
		totalGross = totalGross.Add(gross)
		totalDeductions = totalDeductions.Add(deductions)
		totalTaxes = totalTaxes.Add(taxes)
		totalNet = totalNet.Add(net)
	}

	updated := *run
	updated.Status = nextStatus
	updated.TotalEmployees = len(records)
	updated.TotalGrossPay = totalGross
	updated.TotalDeductions = totalDeductions
	updated.TotalTaxes = totalTaxes
	updated.TotalNetPay = totalNet
	updated.Touch(userID, now)

	if err := s.runRepo.SaveRunState(ctx, updated, run.Version); err != nil {
		return nil, nil, err
	}
	updated.Version = run.Version + 1
	return &updated, records, nil
}

// rollbackToDraft restores the run to DRAFT after a fatal processing error.
// Partially-written items are left in place but contribute nothing until the
// run is regenerated; totals are zeroed, never left half-updated.
func (s *runService) rollbackToDraft(ctx context.Context, run *domain.PayrollRun, userID string, cause error) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Error("Fatal processing error, rolling run back to draft",
		slog.String("run_id", run.RunID),
		slog.String("error", cause.Error()))

	fatal := domain.RunError{
		Code:       domain.RunErrFatal,
		Message:    cause.Error(),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.runRepo.AppendRunErrors(ctx, run.RunID, []domain.RunError{fatal}); err != nil {
		logger.Error("Failed to append fatal error to run log", slog.String("run_id", run.RunID), slog.String("error", err.Error()))
	}

	reverted := *run
	reverted.Status = domain.RunDraft
	reverted.TotalEmployees = 0
	reverted.TotalGrossPay = decimal.Zero
	reverted.TotalDeductions = decimal.Zero
	reverted.TotalTaxes = decimal.Zero
	reverted.TotalNetPay = decimal.Zero
	reverted.ErrorLog = append(reverted.ErrorLog, fatal)
	reverted.Touch(userID, time.Now().UTC())
	if err := s.runRepo.SaveRunState(ctx, reverted, run.Version); err != nil {
		logger.Error("Failed to roll run back to draft", slog.String("run_id", run.RunID), slog.String("error", err.Error()))
	}

	if s.notifier != nil {
		s.notifier.OnRunFailed(ctx, reverted, reverted.ErrorLog)
	}
	if errors.Is(cause, ErrRunCancelledMidway) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransition, cause)
	}
	return nil, fmt.Errorf("%w: processing failed: %v", apperrors.ErrInternal, cause)
}

// ApproveRun implements portssvc.RunSvcFacade.
func (s *runService) ApproveRun(ctx context.Context, organizationID, runID string, approverUserID string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.GetRun(ctx, organizationID, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != domain.RunReview {
		return nil, fmt.Errorf("%w: cannot approve a %s run", apperrors.ErrInvalidTransition, run.Status)
	}

	config, err := s.configRepo.FindLatestConfiguration(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll configuration: %w", err)
	}
	if config.RequireApproval && config.SegregateDuties && approverUserID == run.PreparedBy {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrSelfApproval)
	}

	now := time.Now().UTC()
	updated := *run
	updated.Status = domain.RunApproved
	updated.ApprovedBy = approverUserID
	updated.ApprovedAt = &now
	updated.Touch(approverUserID, now)
	if err := s.runRepo.SaveRunState(ctx, updated, run.Version); err != nil {
		return nil, err
	}
	updated.Version = run.Version + 1

	if s.notifier != nil {
		s.notifier.OnRunApproved(ctx, updated)
	}
	logger.Info("Payroll run approved", slog.String("run_id", runID), slog.String("approved_by", approverUserID))
	return &updated, nil
}

// PayRun implements portssvc.RunSvcFacade.
func (s *runService) PayRun(ctx context.Context, organizationID, runID string, userID string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.GetRun(ctx, organizationID, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != domain.RunApproved {
		return nil, fmt.Errorf("%w: cannot pay a %s run", apperrors.ErrInvalidTransition, run.Status)
	}

	records, err := s.runRepo.FindRecordsByRunID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for disbursement: %w", err)
	}

	if s.disburser != nil {
		if err := s.disburser.Disburse(ctx, *run, records); err != nil {
			// The run stays APPROVED; payment can be retried by the caller.
			return nil, fmt.Errorf("disbursement failed: %w", err)
		}
	}

	now := time.Now().UTC()
	updated := *run
	updated.Status = domain.RunPaid
	updated.PaidAt = &now
	updated.Touch(userID, now)
	if err := s.runRepo.SaveRunState(ctx, updated, run.Version); err != nil {
		return nil, err
	}
	updated.Version = run.Version + 1

	if s.notifier != nil {
		s.notifier.OnRunPaid(ctx, updated)
	}
	logger.Info("Payroll run paid", slog.String("run_id", runID), slog.Int("records", len(records)))
	return &updated, nil
}

// CancelRun implements portssvc.RunSvcFacade.
func (s *runService) CancelRun(ctx context.Context, organizationID, runID string, userID string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.GetRun(ctx, organizationID, runID)
	if err != nil {
		return nil, err
	}
	if !run.Status.CanTransitionTo(domain.RunCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel a %s run", apperrors.ErrInvalidTransition, run.Status)
	}

	now := time.Now().UTC()
	updated := *run
	updated.Status = domain.RunCancelled
	updated.CancelledAt = &now
	updated.Touch(userID, now)
	if err := s.runRepo.SaveRunState(ctx, updated, run.Version); err != nil {
		return nil, err
	}
	updated.Version = run.Version + 1

	// Items and records are voided, not deleted; the audit trail survives.
	if err := s.runRepo.VoidRunItems(ctx, runID); err != nil {
		return nil, fmt.Errorf("failed to void run items: %w", err)
	}
	if err := s.runRepo.VoidRunRecords(ctx, runID); err != nil {
		return nil, fmt.Errorf("failed to void run records: %w", err)
	}

	logger.Info("Payroll run cancelled", slog.String("run_id", runID), slog.String("cancelled_by", userID))
	return &updated, nil
}

// GetRunRecords implements portssvc.RunSvcFacade.
func (s *runService) GetRunRecords(ctx context.Context, organizationID, runID string) ([]domain.EmployeePayrollRecord, error) {
	if _, err := s.GetRun(ctx, organizationID, runID); err != nil {
		return nil, err
	}
	records, err := s.runRepo.FindRecordsByRunID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

// GetRunErrors implements portssvc.RunSvcFacade.
func (s *runService) GetRunErrors(ctx context.Context, organizationID, runID string) ([]domain.RunError, error) {
	run, err := s.GetRun(ctx, organizationID, runID)
	if err != nil {
		return nil, err
	}
	return run.ErrorLog, nil
}
