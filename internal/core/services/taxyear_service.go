package services

import (
	"context"
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
)

// taxYearService manages the immutable tax year snapshots runs compute against.
type taxYearService struct {
	taxYearRepo portsrepo.TaxYearRepositoryFacade
}

// NewTaxYearService creates a new tax year service.
func NewTaxYearService(taxYearRepo portsrepo.TaxYearRepositoryFacade) portssvc.TaxYearSvcFacade {
	return &taxYearService{taxYearRepo: taxYearRepo}
}

var _ portssvc.TaxYearSvcFacade = (*taxYearService)(nil)

// CreateTaxYear implements portssvc.TaxYearSvcFacade. Bracket tables are
// validated for contiguity and an unbounded top bracket before the snapshot
// is persisted; a snapshot already referenced by a run is never rewritten.
func (s *taxYearService) CreateTaxYear(ctx context.Context, organizationID string, req dto.CreateTaxYearRequest, userID string) (*domain.TaxYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	federal := dto.ToBrackets(req.FederalBrackets)
	if err := domain.ValidateBrackets(federal); err != nil {
		return nil, fmt.Errorf("%w: federal brackets: %s", apperrors.ErrValidation, err)
	}
	state := dto.ToBrackets(req.StateBrackets)
	if len(state) > 0 {
		if err := domain.ValidateBrackets(state); err != nil {
			return nil, fmt.Errorf("%w: state brackets: %s", apperrors.ErrValidation, err)
		}
	}
	for _, c := range req.Contributions {
		if c.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: contribution %q has a negative rate", apperrors.ErrValidation, c.Name)
		}
	}

	now := time.Now().UTC()
	taxYear := domain.TaxYear{
		TaxYearID:          uuid.NewString(),
		OrganizationID:     organizationID,
		Year:               req.Year,
		StandardDeduction:  req.StandardDeduction,
		ExemptionAmount:    req.ExemptionAmount,
		FederalBrackets:    federal,
		StateBrackets:      state,
		Contributions:      dto.ToContributions(req.Contributions),
		SurchargeRate:      req.SurchargeRate,
		SurchargeThreshold: req.SurchargeThreshold,
		IsActive:           true,
		AuditFields:        domain.NewAuditFields(userID, now),
	}
	if err := s.taxYearRepo.SaveTaxYear(ctx, taxYear); err != nil {
		return nil, fmt.Errorf("failed to save tax year: %w", err)
	}

	logger.Info("Tax year snapshot recorded",
		slog.String("tax_year_id", taxYear.TaxYearID),
		slog.Int("year", req.Year))
	return &taxYear, nil
}

// GetTaxYear implements portssvc.TaxYearSvcFacade.
func (s *taxYearService) GetTaxYear(ctx context.Context, organizationID string, year int) (*domain.TaxYear, error) {
	taxYear, err := s.taxYearRepo.FindActiveTaxYear(ctx, organizationID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to find tax year %d: %w", year, err)
	}
	return taxYear, nil
}
