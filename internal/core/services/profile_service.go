package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portsrepo "github.com/paycove/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
)

var (
	ErrMissingPayBasis   = errors.New("pay profile is missing the rate for its pay type")
	ErrEffectiveBackdate = errors.New("new profile version must not start before the current one")
)

// profileService manages effective-dated employee pay profiles.
type profileService struct {
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewProfileService creates a new pay profile service.
func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: profileRepo}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

// UpsertProfile implements portssvc.ProfileSvcFacade. Profiles are versioned
// rather than edited: each call records a new row whose effective window
// starts at EffectiveFrom, and the repository closes the previous window in
// the same transaction.
func (s *profileService) UpsertProfile(ctx context.Context, organizationID string, req dto.UpsertProfileRequest, userID string) (*domain.EmployeePayProfile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payType := domain.PayType(req.PayType)
	if !payType.IsValid() {
		return nil, fmt.Errorf("%w: unknown pay type %q", apperrors.ErrValidation, req.PayType)
	}
	if err := validatePayBasis(payType, req.BaseSalary, req.HourlyRate, req.CommissionRate); err != nil {
		return nil, err
	}

	// Versions must move forward in time so the effective windows stay
	// non-overlapping.
	current, err := s.profileRepo.FindActiveProfile(ctx, organizationID, req.EmployeeID, req.EffectiveFrom)
	if err == nil && current.EffectiveFrom.After(req.EffectiveFrom) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEffectiveBackdate)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check current profile: %w", err)
	}

	now := time.Now().UTC()
	profile := domain.EmployeePayProfile{
		ProfileID:             uuid.NewString(),
		OrganizationID:        organizationID,
		EmployeeID:            req.EmployeeID,
		PayType:               payType,
		BaseSalary:            req.BaseSalary,
		HourlyRate:            req.HourlyRate,
		CommissionRate:        req.CommissionRate,
		FederalExemptions:     req.FederalExemptions,
		StateExemptions:       req.StateExemptions,
		AdditionalWithholding: req.AdditionalWithholding,
		BankName:              req.BankName,
		BankAccountNumber:     req.BankAccountNumber,
		BankRoutingNumber:     req.BankRoutingNumber,
		BenefitElections:      req.BenefitElections,
		EffectiveFrom:         req.EffectiveFrom,
		IsActive:              true,
		AuditFields:           domain.NewAuditFields(userID, now),
	}
	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save pay profile: %w", err)
	}

	logger.Info("Pay profile version recorded",
		slog.String("profile_id", profile.ProfileID),
		slog.String("employee_id", req.EmployeeID),
		slog.String("pay_type", req.PayType))
	return &profile, nil
}

// GetActiveProfile implements portssvc.ProfileSvcFacade.
func (s *profileService) GetActiveProfile(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*domain.EmployeePayProfile, error) {
	profile, err := s.profileRepo.FindActiveProfile(ctx, organizationID, employeeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to find active profile for employee %s: %w", employeeID, err)
	}
	return profile, nil
}

// validatePayBasis checks that the rate backing the pay type is positive.
func validatePayBasis(payType domain.PayType, baseSalary, hourlyRate, commissionRate decimal.Decimal) error {
	var basis decimal.Decimal
	switch payType {
	case domain.PaySalary, domain.PayContract:
		basis = baseSalary
	case domain.PayHourly:
		basis = hourlyRate
	case domain.PayCommission:
		basis = commissionRate
	}
	if basis.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s for pay type %s", apperrors.ErrValidation, ErrMissingPayBasis, payType)
	}
	return nil
}
