package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/core/services"
	"github.com/paycove/payroll_engine/internal/dto"
)

type AdjustmentServiceTestSuite struct {
	suite.Suite
	mockRunRepo    *MockRunRepository
	mockConfigRepo *MockConfigRepository
	service        portssvc.AdjustmentSvcFacade
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.mockRunRepo = new(MockRunRepository)
	suite.mockConfigRepo = new(MockConfigRepository)
	suite.service = services.NewAdjustmentService(suite.mockRunRepo, suite.mockConfigRepo)
}

func pendingAdjustment(run *domain.PayrollRun) *domain.PayrollAdjustment {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return &domain.PayrollAdjustment{
		AdjustmentID: "adj-1",
		RunID:        run.RunID,
		EmployeeID:   "emp-1",
		Type:         domain.AdjustmentBonus,
		Amount:       decimal.NewFromInt(500),
		IsPositive:   true,
		Reason:       "Spot bonus",
		Status:       domain.AdjustmentPending,
		AuditFields:  domain.NewAuditFields(testUserID, now),
	}
}

func (suite *AdjustmentServiceTestSuite) TestAddAdjustment_Success() {
	ctx := context.Background()
	run := testRun(domain.RunReview)
	req := dto.AddAdjustmentRequest{
		EmployeeID: "emp-1",
		Type:       "BONUS",
		Amount:     decimal.NewFromFloat(500.005),
		IsPositive: true,
		IsTaxable:  true,
		Reason:     "Spot bonus",
	}

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()
	suite.mockRunRepo.On("SaveAdjustment", ctx, mock.MatchedBy(func(a domain.PayrollAdjustment) bool {
		return a.RunID == run.RunID &&
			a.EmployeeID == "emp-1" &&
			a.Status == domain.AdjustmentPending &&
			a.Amount.Equal(decimal.NewFromInt(500)) // rounded half-even to currency scale
	})).Return(nil).Once()

	adj, err := suite.service.AddAdjustment(ctx, testOrgID, run.RunID, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(adj)
	suite.Equal(domain.AdjustmentPending, adj.Status)
	suite.Equal(domain.AdjustmentBonus, adj.Type)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestAddAdjustment_DisabledByConfiguration() {
	ctx := context.Background()
	run := testRun(domain.RunReview)
	cfg := testConfig()
	cfg.AllowManualAdjustments = false

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(cfg, nil).Once()

	adj, err := suite.service.AddAdjustment(ctx, testOrgID, run.RunID, dto.AddAdjustmentRequest{
		EmployeeID: "emp-1",
		Type:       "BONUS",
		Amount:     decimal.NewFromInt(100),
	}, testUserID)

	suite.Require().Error(err)
	suite.Nil(adj)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRunRepo.AssertNotCalled(suite.T(), "SaveAdjustment", mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestAddAdjustment_NonPositiveAmount() {
	ctx := context.Background()
	run := testRun(domain.RunDraft)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()

	adj, err := suite.service.AddAdjustment(ctx, testOrgID, run.RunID, dto.AddAdjustmentRequest{
		EmployeeID: "emp-1",
		Type:       "PENALTY",
		Amount:     decimal.Zero,
	}, testUserID)

	suite.Require().Error(err)
	suite.Nil(adj)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestAddAdjustment_UnknownType() {
	ctx := context.Background()
	run := testRun(domain.RunDraft)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()

	adj, err := suite.service.AddAdjustment(ctx, testOrgID, run.RunID, dto.AddAdjustmentRequest{
		EmployeeID: "emp-1",
		Type:       "GARNISHMENT",
		Amount:     decimal.NewFromInt(100),
	}, testUserID)

	suite.Require().Error(err)
	suite.Nil(adj)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestAddAdjustment_FrozenRun() {
	ctx := context.Background()
	run := testRun(domain.RunApproved)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()

	adj, err := suite.service.AddAdjustment(ctx, testOrgID, run.RunID, dto.AddAdjustmentRequest{
		EmployeeID: "emp-1",
		Type:       "BONUS",
		Amount:     decimal.NewFromInt(100),
	}, testUserID)

	suite.Require().Error(err)
	suite.Nil(adj)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *AdjustmentServiceTestSuite) TestApproveAdjustment_Success() {
	ctx := context.Background()
	run := testRun(domain.RunReview)
	run.TotalGrossPay = decimal.NewFromInt(1000)
	run.TotalNetPay = decimal.NewFromInt(900)
	run.TotalTaxes = decimal.NewFromInt(100)
	adjustment := pendingAdjustment(run)

	items := []domain.PayrollItem{
		{EmployeeID: "emp-1", ItemType: domain.ComponentEarning, Amount: decimal.NewFromInt(1000)},
		{EmployeeID: "emp-1", ItemType: domain.ComponentTax, Amount: decimal.NewFromInt(100)},
	}
	existing := &domain.EmployeePayrollRecord{
		RecordID:   "rec-1",
		RunID:      run.RunID,
		EmployeeID: "emp-1",
		GrossPay:   decimal.NewFromInt(1000),
		TotalTaxes: decimal.NewFromInt(100),
		NetPay:     decimal.NewFromInt(900),
	}

	suite.mockRunRepo.On("FindAdjustmentByID", ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockRunRepo.On("FindItemsByRunAndEmployee", ctx, run.RunID, "emp-1").Return(items, nil).Once()
	suite.mockRunRepo.On("FindAdjustmentsByRunID", ctx, run.RunID).
		Return([]domain.PayrollAdjustment{*adjustment}, nil).Once()
	suite.mockRunRepo.On("FindRecordByRunAndEmployee", ctx, run.RunID, "emp-1").Return(existing, nil).Once()

	// The +500 bonus lands in gross and net; run totals shift by the same
	// delta, atomically at the run's current version.
	suite.mockRunRepo.On("ApproveAdjustment", ctx,
		mock.MatchedBy(func(a domain.PayrollAdjustment) bool {
			return a.AdjustmentID == "adj-1" &&
				a.Status == domain.AdjustmentApproved &&
				a.ApprovedBy == "user-2" &&
				a.ApprovedAt != nil
		}),
		mock.MatchedBy(func(r domain.EmployeePayrollRecord) bool {
			return r.GrossPay.Equal(decimal.NewFromInt(1500)) &&
				r.NetPay.Equal(decimal.NewFromInt(1400))
		}),
		mock.MatchedBy(func(r domain.PayrollRun) bool {
			return r.TotalGrossPay.Equal(decimal.NewFromInt(1500)) &&
				r.TotalNetPay.Equal(decimal.NewFromInt(1400)) &&
				r.TotalTaxes.Equal(decimal.NewFromInt(100))
		}),
		int64(1),
	).Return(nil).Once()

	approved, err := suite.service.ApproveAdjustment(ctx, testOrgID, "adj-1", "user-2")

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(domain.AdjustmentApproved, approved.Status)
	suite.Equal("user-2", approved.ApprovedBy)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestApproveAdjustment_CreatesRecordWhenMissing() {
	ctx := context.Background()
	run := testRun(domain.RunDraft)
	adjustment := pendingAdjustment(run)

	suite.mockRunRepo.On("FindAdjustmentByID", ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockRunRepo.On("FindItemsByRunAndEmployee", ctx, run.RunID, "emp-1").
		Return([]domain.PayrollItem{}, nil).Once()
	suite.mockRunRepo.On("FindAdjustmentsByRunID", ctx, run.RunID).
		Return([]domain.PayrollAdjustment{*adjustment}, nil).Once()
	suite.mockRunRepo.On("FindRecordByRunAndEmployee", ctx, run.RunID, "emp-1").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRunRepo.On("ApproveAdjustment", ctx,
		mock.AnythingOfType("domain.PayrollAdjustment"),
		mock.MatchedBy(func(r domain.EmployeePayrollRecord) bool {
			return r.RecordID != "" &&
				r.EmployeeID == "emp-1" &&
				r.GrossPay.Equal(decimal.NewFromInt(500)) &&
				r.NetPay.Equal(decimal.NewFromInt(500))
		}),
		// The brand-new record counts toward the run headcount.
		mock.MatchedBy(func(r domain.PayrollRun) bool {
			return r.TotalEmployees == 1 &&
				r.TotalGrossPay.Equal(decimal.NewFromInt(500)) &&
				r.TotalNetPay.Equal(decimal.NewFromInt(500))
		}),
		int64(1),
	).Return(nil).Once()

	approved, err := suite.service.ApproveAdjustment(ctx, testOrgID, "adj-1", "user-2")

	suite.Require().NoError(err)
	suite.Equal(domain.AdjustmentApproved, approved.Status)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestApproveAdjustment_NotPending() {
	ctx := context.Background()
	run := testRun(domain.RunReview)
	adjustment := pendingAdjustment(run)
	adjustment.Status = domain.AdjustmentApproved

	suite.mockRunRepo.On("FindAdjustmentByID", ctx, "adj-1").Return(adjustment, nil).Once()

	approved, err := suite.service.ApproveAdjustment(ctx, testOrgID, "adj-1", "user-2")

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *AdjustmentServiceTestSuite) TestApproveAdjustment_FrozenRun() {
	ctx := context.Background()
	run := testRun(domain.RunPaid)
	adjustment := pendingAdjustment(run)

	suite.mockRunRepo.On("FindAdjustmentByID", ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()

	approved, err := suite.service.ApproveAdjustment(ctx, testOrgID, "adj-1", "user-2")

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *AdjustmentServiceTestSuite) TestApproveAdjustment_ConcurrentTotalsConflict() {
	ctx := context.Background()
	run := testRun(domain.RunReview)
	adjustment := pendingAdjustment(run)

	suite.mockRunRepo.On("FindAdjustmentByID", ctx, "adj-1").Return(adjustment, nil).Once()
	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockRunRepo.On("FindItemsByRunAndEmployee", ctx, run.RunID, "emp-1").
		Return([]domain.PayrollItem{}, nil).Once()
	suite.mockRunRepo.On("FindAdjustmentsByRunID", ctx, run.RunID).
		Return([]domain.PayrollAdjustment{*adjustment}, nil).Once()
	suite.mockRunRepo.On("FindRecordByRunAndEmployee", ctx, run.RunID, "emp-1").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRunRepo.On("ApproveAdjustment", ctx, mock.Anything, mock.Anything, mock.Anything, int64(1)).
		Return(apperrors.ErrConflict).Once()

	approved, err := suite.service.ApproveAdjustment(ctx, testOrgID, "adj-1", "user-2")

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AdjustmentServiceTestSuite) TestListAdjustments_WrongOrganization() {
	ctx := context.Background()
	run := testRun(domain.RunReview)
	run.OrganizationID = "org-other"

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()

	adjustments, err := suite.service.ListAdjustments(ctx, testOrgID, run.RunID)

	suite.Require().Error(err)
	suite.Nil(adjustments)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAdjustmentService(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
