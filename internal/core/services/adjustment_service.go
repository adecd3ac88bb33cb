package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portsrepo "github.com/paycove/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrAdjustmentsDisabled   = errors.New("manual adjustments are disabled for this organization")
	ErrAdjustmentNotPending  = errors.New("adjustment is not pending approval")
	ErrAdjustmentNonPositive = errors.New("adjustment amount must be positive")
)

// adjustmentService maintains the post-hoc correction ledger of a run.
type adjustmentService struct {
	runRepo    portsrepo.RunRepositoryWithTx
	configRepo portsrepo.ConfigRepositoryFacade
}

// NewAdjustmentService creates a new adjustment ledger service.
func NewAdjustmentService(runRepo portsrepo.RunRepositoryWithTx, configRepo portsrepo.ConfigRepositoryFacade) portssvc.AdjustmentSvcFacade {
	return &adjustmentService{runRepo: runRepo, configRepo: configRepo}
}

var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// AddAdjustment implements portssvc.AdjustmentSvcFacade. Adjustments always
// enter pending and contribute nothing to totals until approved.
func (s *adjustmentService) AddAdjustment(ctx context.Context, organizationID, runID string, req dto.AddAdjustmentRequest, creatorUserID string) (*domain.PayrollAdjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.loadRun(ctx, organizationID, runID)
	if err != nil {
		return nil, err
	}
	if !run.Status.AllowsItemMutation() {
		return nil, fmt.Errorf("%w: cannot adjust a %s run", apperrors.ErrInvalidTransition, run.Status)
	}

	config, err := s.configRepo.FindLatestConfiguration(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll configuration: %w", err)
	}
	if !config.AllowManualAdjustments {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrAdjustmentsDisabled)
	}

	adjType := domain.AdjustmentType(req.Type)
	if !adjType.IsValid() {
		return nil, fmt.Errorf("%w: unknown adjustment type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAdjustmentNonPositive)
	}

	now := time.Now().UTC()
	adjustment := domain.PayrollAdjustment{
		AdjustmentID: uuid.NewString(),
		RunID:        runID,
		EmployeeID:   req.EmployeeID,
		Type:         adjType,
		Amount:       domain.RoundToCurrency(req.Amount),
		IsPositive:   req.IsPositive,
		IsTaxable:    req.IsTaxable,
		Reason:       req.Reason,
		Status:       domain.AdjustmentPending,
		AuditFields:  domain.NewAuditFields(creatorUserID, now),
	}
	if err := s.runRepo.SaveAdjustment(ctx, adjustment); err != nil {
		return nil, fmt.Errorf("failed to save adjustment: %w", err)
	}

	logger.Info("Adjustment recorded",
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("run_id", runID),
		slog.String("employee_id", req.EmployeeID),
		slog.String("type", req.Type))
	return &adjustment, nil
}

// ApproveAdjustment implements portssvc.AdjustmentSvcFacade. The approval
// stamp, the recomputed employee record and the updated run totals are
// written in one database transaction; a concurrent totals writer surfaces
// as apperrors.ErrConflict and the caller retries.
func (s *adjustmentService) ApproveAdjustment(ctx context.Context, organizationID, adjustmentID string, approverUserID string) (*domain.PayrollAdjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	adjustment, err := s.runRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	if adjustment.Status != domain.AdjustmentPending {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransition, ErrAdjustmentNotPending)
	}

	run, err := s.loadRun(ctx, organizationID, adjustment.RunID)
	if err != nil {
		return nil, err
	}
	if !run.Status.AllowsItemMutation() {
		return nil, fmt.Errorf("%w: cannot approve an adjustment on a %s run", apperrors.ErrInvalidTransition, run.Status)
	}

	now := time.Now().UTC()
	approved := *adjustment
	approved.Status = domain.AdjustmentApproved
	approved.ApprovedBy = approverUserID
	approved.ApprovedAt = &now
	approved.Touch(approverUserID, now)

	// Recompute the owning employee record from items plus the adjustment
	// set as it will be after approval.
	items, err := s.runRepo.FindItemsByRunAndEmployee(ctx, run.RunID, adjustment.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	adjustments, err := s.runRepo.FindAdjustmentsByRunID(ctx, run.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adjustments: %w", err)
	}
	var employeeAdjs []domain.PayrollAdjustment
	for _, a := range adjustments {
		if a.EmployeeID != adjustment.EmployeeID {
			continue
		}
		if a.AdjustmentID == approved.AdjustmentID {
			a = approved
		}
		employeeAdjs = append(employeeAdjs, a)
	}

	createdRecord := false
	record, err := s.runRepo.FindRecordByRunAndEmployee(ctx, run.RunID, adjustment.EmployeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load record: %w", err)
		}
		// The run may not have been processed yet; the adjustment still gets
		// a record so the rollup exists.
		createdRecord = true
		record = &domain.EmployeePayrollRecord{
			RecordID:    uuid.NewString(),
			RunID:       run.RunID,
			EmployeeID:  adjustment.EmployeeID,
			AuditFields: domain.NewAuditFields(approverUserID, now),
		}
	}

	oldGross, oldDeductions, oldTaxes, oldNet := record.GrossPay, record.TotalDeductions, record.TotalTaxes, record.NetPay
	gross, deductions, taxes, net := domain.ComputeRecord(items, employeeAdjs)
	record.GrossPay = gross
	record.TotalDeductions = deductions
	record.TotalTaxes = taxes
	record.NetPay = net
	record.Touch(approverUserID, now)

	// Run totals shift by exactly this record's delta; every other record is
	// untouched, so the totals stay a pure function of items + approved
	// adjustments.
	updated := *run
	updated.TotalGrossPay = run.TotalGrossPay.Sub(oldGross).Add(gross)
	updated.TotalDeductions = run.TotalDeductions.Sub(oldDeductions).Add(deductions)
	updated.TotalTaxes = run.TotalTaxes.Sub(oldTaxes).Add(taxes)
	updated.TotalNetPay = run.TotalNetPay.Sub(oldNet).Add(net)
	if createdRecord {
		updated.TotalEmployees = run.TotalEmployees + 1
	}
	updated.Touch(approverUserID, now)

	if err := s.runRepo.ApproveAdjustment(ctx, approved, *record, updated, run.Version); err != nil {
		return nil, err
	}

	logger.Info("Adjustment approved",
		slog.String("adjustment_id", adjustmentID),
		slog.String("run_id", run.RunID),
		slog.String("approved_by", approverUserID))
	return &approved, nil
}

// ListAdjustments implements portssvc.AdjustmentSvcFacade.
func (s *adjustmentService) ListAdjustments(ctx context.Context, organizationID, runID string) ([]domain.PayrollAdjustment, error) {
	if _, err := s.loadRun(ctx, organizationID, runID); err != nil {
		return nil, err
	}
	adjustments, err := s.runRepo.FindAdjustmentsByRunID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	return adjustments, nil
}

func (s *adjustmentService) loadRun(ctx context.Context, organizationID, runID string) (*domain.PayrollRun, error) {
	run, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find run %s: %w", runID, err)
	}
	if run.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return run, nil
}
