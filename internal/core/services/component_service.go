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

var ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")

// componentService manages the catalog of reusable pay components.
type componentService struct {
	componentRepo portsrepo.ComponentRepositoryFacade
}

// NewComponentService creates a new component catalog service.
func NewComponentService(componentRepo portsrepo.ComponentRepositoryFacade) portssvc.ComponentSvcFacade {
	return &componentService{componentRepo: componentRepo}
}

var _ portssvc.ComponentSvcFacade = (*componentService)(nil)

// CreateComponent implements portssvc.ComponentSvcFacade.
func (s *componentService) CreateComponent(ctx context.Context, organizationID string, req dto.CreateComponentRequest, creatorUserID string) (*domain.PayrollComponent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	componentType := domain.ComponentType(req.ComponentType)
	calcType := domain.CalculationType(req.CalculationType)
	if err := validateComponentInputs(componentType, calcType, req.Amount, req.Percentage); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	component := domain.PayrollComponent{
		ComponentID:     uuid.NewString(),
		OrganizationID:  organizationID,
		Name:            req.Name,
		ComponentType:   componentType,
		CalculationType: calcType,
		Amount:          req.Amount,
		Percentage:      req.Percentage,
		IsTaxable:       req.IsTaxable,
		IsPretax:        req.IsPretax,
		IsMandatory:     req.IsMandatory,
		SortOrder:       req.SortOrder,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(creatorUserID, now),
	}
	if err := s.componentRepo.SaveComponent(ctx, component); err != nil {
		return nil, fmt.Errorf("failed to save component: %w", err)
	}

	logger.Info("Component created",
		slog.String("component_id", component.ComponentID),
		slog.String("name", component.Name),
		slog.String("type", req.ComponentType))
	return &component, nil
}

// GetComponent implements portssvc.ComponentSvcFacade.
func (s *componentService) GetComponent(ctx context.Context, organizationID, componentID string) (*domain.PayrollComponent, error) {
	component, err := s.componentRepo.FindComponentByID(ctx, componentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find component %s: %w", componentID, err)
	}
	if component.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return component, nil
}

// ListComponents implements portssvc.ComponentSvcFacade.
func (s *componentService) ListComponents(ctx context.Context, organizationID string, activeOnly bool) ([]domain.PayrollComponent, error) {
	components, err := s.componentRepo.ListComponentsByOrganization(ctx, organizationID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	return components, nil
}

// UpdateComponent implements portssvc.ComponentSvcFacade. A component already
// referenced by posted items is never edited in place: a new version is
// inserted and the old one deactivated, so historical items keep pointing at
// the definition they were priced with.
func (s *componentService) UpdateComponent(ctx context.Context, organizationID, componentID string, req dto.UpdateComponentRequest, userID string) (*domain.PayrollComponent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	current, err := s.GetComponent(ctx, organizationID, componentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	edited := *current
	if req.Name != nil {
		edited.Name = *req.Name
	}
	if req.Amount != nil {
		edited.Amount = *req.Amount
	}
	if req.Percentage != nil {
		edited.Percentage = *req.Percentage
	}
	if req.IsTaxable != nil {
		edited.IsTaxable = *req.IsTaxable
	}
	if req.IsPretax != nil {
		edited.IsPretax = *req.IsPretax
	}
	if req.IsMandatory != nil {
		edited.IsMandatory = *req.IsMandatory
	}
	if req.SortOrder != nil {
		edited.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		edited.IsActive = *req.IsActive
	}
	if err := validateComponentInputs(edited.ComponentType, edited.CalculationType, edited.Amount, edited.Percentage); err != nil {
		return nil, err
	}

	referenced, err := s.componentRepo.IsComponentReferenced(ctx, componentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check component references: %w", err)
	}
	if !referenced {
		edited.Touch(userID, now)
		if err := s.componentRepo.UpdateComponent(ctx, edited); err != nil {
			return nil, fmt.Errorf("failed to update component: %w", err)
		}
		logger.Info("Component updated in place", slog.String("component_id", componentID))
		return &edited, nil
	}

	replacement := edited
	replacement.ComponentID = uuid.NewString()
	replacement.PreviousVersionID = componentID
	replacement.AuditFields = domain.NewAuditFields(userID, now)
	if err := s.componentRepo.SupersedeComponent(ctx, componentID, replacement); err != nil {
		return nil, fmt.Errorf("failed to supersede component: %w", err)
	}

	logger.Info("Component superseded",
		slog.String("old_component_id", componentID),
		slog.String("new_component_id", replacement.ComponentID))
	return &replacement, nil
}

func validateComponentInputs(componentType domain.ComponentType, calcType domain.CalculationType, amount, percentage decimal.Decimal) error {
	if !componentType.IsValid() {
		return fmt.Errorf("%w: unknown component type %q", apperrors.ErrValidation, componentType)
	}
	if !calcType.IsValid() {
		return fmt.Errorf("%w: unknown calculation type %q", apperrors.ErrValidation, calcType)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if calcType == domain.CalcPercentage {
		if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPercentageOutOfRange)
		}
	}
	return nil
}
