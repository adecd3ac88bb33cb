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
)

// configService manages per-organization payroll configuration.
type configService struct {
	configRepo portsrepo.ConfigRepositoryFacade
}

// NewConfigService creates a new configuration service.
func NewConfigService(configRepo portsrepo.ConfigRepositoryFacade) portssvc.ConfigSvcFacade {
	return &configService{configRepo: configRepo}
}

var _ portssvc.ConfigSvcFacade = (*configService)(nil)

// GetConfiguration implements portssvc.ConfigSvcFacade. An organization with
// no stored configuration gets the defaults for the current year.
func (s *configService) GetConfiguration(ctx context.Context, organizationID string) (*domain.PayrollConfiguration, error) {
	config, err := s.configRepo.FindLatestConfiguration(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			def := domain.DefaultConfiguration(organizationID, time.Now().UTC().Year())
			return &def, nil
		}
		return nil, fmt.Errorf("failed to find configuration: %w", err)
	}
	return config, nil
}

// UpdateConfiguration implements portssvc.ConfigSvcFacade. The request
// targets one (organization, tax year); unset fields keep their stored or
// default values.
func (s *configService) UpdateConfiguration(ctx context.Context, organizationID string, req dto.UpdateConfigRequest, userID string) (*domain.PayrollConfiguration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	config, err := s.configRepo.FindConfiguration(ctx, organizationID, req.TaxYear)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to find configuration: %w", err)
		}
		def := domain.DefaultConfiguration(organizationID, req.TaxYear)
		def.ConfigID = uuid.NewString()
		def.AuditFields = domain.NewAuditFields(userID, now)
		config = &def
	}

	if req.CurrencyCode != nil {
		config.CurrencyCode = *req.CurrencyCode
	}
	if req.PayFrequency != nil {
		freq := domain.PayFrequency(*req.PayFrequency)
		if !freq.IsValid() {
			return nil, fmt.Errorf("%w: unknown pay frequency %q", apperrors.ErrValidation, *req.PayFrequency)
		}
		config.PayFrequency = freq
	}
	if req.OvertimeMultiplier != nil {
		if req.OvertimeMultiplier.IsNegative() {
			return nil, fmt.Errorf("%w: overtime multiplier must not be negative", apperrors.ErrValidation)
		}
		config.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.DoubleTimeMultiplier != nil {
		if req.DoubleTimeMultiplier.IsNegative() {
			return nil, fmt.Errorf("%w: double time multiplier must not be negative", apperrors.ErrValidation)
		}
		config.DoubleTimeMultiplier = *req.DoubleTimeMultiplier
	}
	if req.DoubleTimeThreshold != nil {
		config.DoubleTimeThreshold = *req.DoubleTimeThreshold
	}
	if req.WorkdayHours != nil {
		if !req.WorkdayHours.IsPositive() {
			return nil, fmt.Errorf("%w: workday hours must be positive", apperrors.ErrValidation)
		}
		config.WorkdayHours = *req.WorkdayHours
	}
	if req.AutoProcess != nil {
		config.AutoProcess = *req.AutoProcess
	}
	if req.RequireApproval != nil {
		config.RequireApproval = *req.RequireApproval
	}
	if req.SegregateDuties != nil {
		config.SegregateDuties = *req.SegregateDuties
	}
	if req.AllowManualAdjustments != nil {
		config.AllowManualAdjustments = *req.AllowManualAdjustments
	}
	config.Touch(userID, now)

	if err := s.configRepo.SaveConfiguration(ctx, *config); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Info("Payroll configuration saved",
		slog.String("config_id", config.ConfigID),
		slog.Int("tax_year", config.TaxYear))
	return config, nil
}
