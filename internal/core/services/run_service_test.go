package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/core/services"
	"github.com/paycove/payroll_engine/internal/dto"
)

type RunServiceTestSuite struct {
	suite.Suite
	mockRunRepo       *MockRunRepository
	mockComponentRepo *MockComponentRepository
	mockProfileRepo   *MockProfileRepository
	mockTaxYearRepo   *MockTaxYearRepository
	mockConfigRepo    *MockConfigRepository
	mockGenerator     *MockGenerator
	mockDirectory     *MockDirectory
	mockAttendance    *MockAttendance
	mockSales         *MockSales
	mockDisburser     *MockDisburser
	mockNotifier      *MockNotifier
	service           portssvc.RunSvcFacade
}

func (suite *RunServiceTestSuite) SetupTest() {
	suite.mockRunRepo = new(MockRunRepository)
	suite.mockComponentRepo = new(MockComponentRepository)
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.mockTaxYearRepo = new(MockTaxYearRepository)
	suite.mockConfigRepo = new(MockConfigRepository)
	suite.mockGenerator = new(MockGenerator)
	suite.mockDirectory = new(MockDirectory)
	suite.mockAttendance = new(MockAttendance)
	suite.mockSales = new(MockSales)
	suite.mockDisburser = new(MockDisburser)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewRunService(
		suite.mockRunRepo,
		suite.mockComponentRepo,
		suite.mockProfileRepo,
		suite.mockTaxYearRepo,
		suite.mockConfigRepo,
		suite.mockGenerator,
		suite.mockDirectory,
		suite.mockAttendance,
		suite.mockSales,
		suite.mockDisburser,
		suite.mockNotifier,
	)
}

const (
	testOrgID  = "org-1"
	testUserID = "user-1"
)

func testRun(status domain.RunStatus) *domain.PayrollRun {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.PayrollRun{
		RunID:           uuid.NewString(),
		OrganizationID:  testOrgID,
		PeriodStart:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		RunType:         domain.RunTypeRegular,
		Status:          status,
		TaxYearID:       "ty-1",
		TotalGrossPay:   decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalTaxes:      decimal.Zero,
		TotalNetPay:     decimal.Zero,
		PreparedBy:      testUserID,
		Version:         1,
		AuditFields:     domain.NewAuditFields(testUserID, now),
	}
}

func testConfig() *domain.PayrollConfiguration {
	cfg := domain.DefaultConfiguration(testOrgID, 2025)
	cfg.ConfigID = "cfg-1"
	cfg.SegregateDuties = true
	return &cfg
}

// --- CreateRun ---

func (suite *RunServiceTestSuite) TestCreateRun_Success() {
	ctx := context.Background()
	req := dto.CreateRunRequest{
		PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		RunType:     "REGULAR",
		TaxYear:     2025,
	}

	suite.mockTaxYearRepo.On("FindActiveTaxYear", ctx, testOrgID, 2025).
		Return(&domain.TaxYear{TaxYearID: "ty-1", Year: 2025}, nil).Once()
	suite.mockRunRepo.On("CreateRun", ctx, mock.MatchedBy(func(r domain.PayrollRun) bool {
		return r.OrganizationID == testOrgID &&
			r.Status == domain.RunDraft &&
			r.RunType == domain.RunTypeRegular &&
			r.TaxYearID == "ty-1" &&
			r.TotalGrossPay.IsZero() &&
			r.CreatedBy == testUserID
	})).Return(nil).Once()

	run, err := suite.service.CreateRun(ctx, testOrgID, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(run)
	suite.Equal(domain.RunDraft, run.Status)
	suite.Equal("ty-1", run.TaxYearID)
	suite.mockRunRepo.AssertExpectations(suite.T())
	suite.mockTaxYearRepo.AssertExpectations(suite.T())
}

func (suite *RunServiceTestSuite) TestCreateRun_InvalidPeriod() {
	ctx := context.Background()
	req := dto.CreateRunRequest{
		PeriodStart: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		RunType:     "REGULAR",
		TaxYear:     2025,
	}

	run, err := suite.service.CreateRun(ctx, testOrgID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(run)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RunServiceTestSuite) TestCreateRun_UnknownRunType() {
	ctx := context.Background()
	req := dto.CreateRunRequest{
		PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		RunType:     "WEEKLY",
		TaxYear:     2025,
	}

	run, err := suite.service.CreateRun(ctx, testOrgID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(run)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RunServiceTestSuite) TestCreateRun_DuplicatePeriod() {
	ctx := context.Background()
	req := dto.CreateRunRequest{
		PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		RunType:     "REGULAR",
		TaxYear:     2025,
	}

	suite.mockTaxYearRepo.On("FindActiveTaxYear", ctx, testOrgID, 2025).
		Return(&domain.TaxYear{TaxYearID: "ty-1"}, nil).Once()
	suite.mockRunRepo.On("CreateRun", ctx, mock.AnythingOfType("domain.PayrollRun")).
		Return(apperrors.ErrDuplicate).Once()

	run, err := suite.service.CreateRun(ctx, testOrgID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(run)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

// --- GetRun ---

func (suite *RunServiceTestSuite) TestGetRun_WrongOrganization() {
	ctx := context.Background()
	run := testRun(domain.RunDraft)
	run.OrganizationID = "org-other"

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()

	got, err := suite.service.GetRun(ctx, testOrgID, run.RunID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ProcessRun ---

func (suite *RunServiceTestSuite) TestProcessRun_PartialFailureIsolated() {
	ctx := context.Background()
	run := testRun(domain.RunDraft)

	profile := &domain.EmployeePayProfile{
		EmployeeID: "emp-ok",
		PayType:    domain.PayHourly,
		HourlyRate: decimal.NewFromInt(20),
		IsActive:   true,
	}
	items := []domain.PayrollItem{
		{EmployeeID: "emp-ok", ItemType: domain.ComponentEarning, Amount: decimal.NewFromInt(1000)},
		{EmployeeID: "emp-ok", ItemType: domain.ComponentTax, Amount: decimal.NewFromInt(100)},
	}
	record := domain.EmployeePayrollRecord{
		RecordID:   "rec-1",
		RunID:      run.RunID,
		EmployeeID: "emp-ok",
	}

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()
	suite.mockTaxYearRepo.On("FindTaxYearByID", ctx, "ty-1").Return(&domain.TaxYear{TaxYearID: "ty-1"}, nil).Once()
	suite.mockComponentRepo.On("ListComponentsByOrganization", ctx, testOrgID, true).
		Return([]domain.PayrollComponent{}, nil).Once()
	suite.mockDirectory.On("GetActiveEmployees", ctx, testOrgID).
		Return([]string{"emp-ok", "emp-missing"}, nil).Once()

	// DRAFT -> PROCESSING at the run's current version.
	suite.mockRunRepo.On("SaveRunState", ctx, mock.MatchedBy(func(r domain.PayrollRun) bool {
		return r.Status == domain.RunProcessing
	}), int64(1)).Return(nil).Once()

	// Generation runs on a derived context inside the worker group.
	suite.mockRunRepo.On("FindRunStatus", mock.Anything, run.RunID).Return(domain.RunProcessing, nil)
	suite.mockProfileRepo.On("FindActiveProfile", mock.Anything, testOrgID, "emp-ok", run.PeriodEnd).
		Return(profile, nil).Once()
	suite.mockProfileRepo.On("FindActiveProfile", mock.Anything, testOrgID, "emp-missing", run.PeriodEnd).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAttendance.On("GetReportedHours", mock.Anything, "emp-ok", run.RunID).
		Return(portssvc.ReportedHours{HoursWorked: decimal.NewFromInt(80), OvertimeHours: decimal.Zero}, nil).Once()
	suite.mockGenerator.On("GenerateForEmployee", mock.Anything, mock.MatchedBy(func(in dto.GenerationInput) bool {
		return in.Profile.EmployeeID == "emp-ok" && in.Run.RunID == run.RunID
	})).Return(&dto.GenerationResult{Items: items, Record: record}, nil).Once()
	suite.mockRunRepo.On("ReplaceEmployeeItems", mock.Anything, run.RunID, "emp-ok", items).Return(nil).Once()

	// The skipped employee's rows from any earlier pass are voided so they
	// cannot contribute to the recomputed totals.
	suite.mockRunRepo.On("ReplaceEmployeeItems", mock.Anything, run.RunID, "emp-missing", []domain.PayrollItem(nil)).
		Return(nil).Once()
	suite.mockRunRepo.On("VoidEmployeeRecord", mock.Anything, run.RunID, "emp-missing").Return(nil).Once()

	// One upsert during generation, one during total recomputation.
	suite.mockRunRepo.On("UpsertRecord", mock.Anything, mock.AnythingOfType("domain.EmployeePayrollRecord")).Return(nil)

	// The missing profile lands in the error log; the batch keeps going.
	suite.mockRunRepo.On("AppendRunErrors", ctx, run.RunID, mock.MatchedBy(func(errs []domain.RunError) bool {
		return len(errs) == 1 &&
			errs[0].EmployeeID == "emp-missing" &&
			errs[0].Code == domain.RunErrProfileMissing
	})).Return(nil).Once()

	suite.mockRunRepo.On("FindItemsByRunID", ctx, run.RunID).Return(items, nil).Once()
	suite.mockRunRepo.On("FindAdjustmentsByRunID", ctx, run.RunID).Return([]domain.PayrollAdjustment{}, nil).Once()
	suite.mockRunRepo.On("FindRecordsByRunID", ctx, run.RunID).Return([]domain.EmployeePayrollRecord{record}, nil).Once()

	// PROCESSING -> REVIEW at the incremented version, with recomputed totals.
	suite.mockRunRepo.On("SaveRunState", ctx, mock.MatchedBy(func(r domain.PayrollRun) bool {
		return r.Status == domain.RunReview &&
			r.TotalEmployees == 1 &&
			r.TotalGrossPay.Equal(decimal.NewFromInt(1000)) &&
			r.TotalTaxes.Equal(decimal.NewFromInt(100)) &&
			r.TotalNetPay.Equal(decimal.NewFromInt(900))
	}), int64(2)).Return(nil).Once()

	updated, err := suite.service.ProcessRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.RunReview, updated.Status)
	suite.Equal(1, updated.TotalEmployees)
	suite.Len(updated.ErrorLog, 1)
	suite.mockRunRepo.AssertExpectations(suite.T())
	suite.mockProfileRepo.AssertExpectations(suite.T())
	suite.mockGenerator.AssertExpectations(suite.T())
}

func (suite *RunServiceTestSuite) TestProcessRun_ReprocessReplacesItems() {
	ctx := context.Background()
	run := testRun(domain.RunProcessing)

	profiles := map[string]*domain.EmployeePayProfile{
		"emp-1": {EmployeeID: "emp-1", PayType: domain.PayHourly, HourlyRate: decimal.NewFromInt(20), IsActive: true},
		"emp-2": {EmployeeID: "emp-2", PayType: domain.PayHourly, HourlyRate: decimal.NewFromInt(30), IsActive: true},
	}
	itemsByEmployee := map[string][]domain.PayrollItem{
		"emp-1": {
			{EmployeeID: "emp-1", ItemType: domain.ComponentEarning, Amount: decimal.NewFromInt(1000)},
			{EmployeeID: "emp-1", ItemType: domain.ComponentTax, Amount: decimal.NewFromInt(100)},
		},
		"emp-2": {
			{EmployeeID: "emp-2", ItemType: domain.ComponentEarning, Amount: decimal.NewFromInt(2000)},
			{EmployeeID: "emp-2", ItemType: domain.ComponentTax, Amount: decimal.NewFromInt(300)},
		},
	}
	records := []domain.EmployeePayrollRecord{
		{RecordID: "rec-1", RunID: run.RunID, EmployeeID: "emp-1"},
		{RecordID: "rec-2", RunID: run.RunID, EmployeeID: "emp-2"},
	}

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()
	suite.mockTaxYearRepo.On("FindTaxYearByID", ctx, "ty-1").Return(&domain.TaxYear{TaxYearID: "ty-1"}, nil).Once()
	suite.mockComponentRepo.On("ListComponentsByOrganization", ctx, testOrgID, true).
		Return([]domain.PayrollComponent{}, nil).Once()
	suite.mockDirectory.On("GetActiveEmployees", ctx, testOrgID).
		Return([]string{"emp-1", "emp-2"}, nil).Once()

	suite.mockRunRepo.On("FindRunStatus", mock.Anything, run.RunID).Return(domain.RunProcessing, nil)
	for _, employeeID := range []string{"emp-1", "emp-2"} {
		suite.mockProfileRepo.On("FindActiveProfile", mock.Anything, testOrgID, employeeID, run.PeriodEnd).
			Return(profiles[employeeID], nil).Once()
		suite.mockAttendance.On("GetReportedHours", mock.Anything, employeeID, run.RunID).
			Return(portssvc.ReportedHours{HoursWorked: decimal.NewFromInt(80), OvertimeHours: decimal.Zero}, nil).Once()
	}
	suite.mockGenerator.On("GenerateForEmployee", mock.Anything, mock.MatchedBy(func(in dto.GenerationInput) bool {
		return in.Profile.EmployeeID == "emp-1"
	})).Return(&dto.GenerationResult{Items: itemsByEmployee["emp-1"], Record: records[0]}, nil).Once()
	suite.mockGenerator.On("GenerateForEmployee", mock.Anything, mock.MatchedBy(func(in dto.GenerationInput) bool {
		return in.Profile.EmployeeID == "emp-2"
	})).Return(&dto.GenerationResult{Items: itemsByEmployee["emp-2"], Record: records[1]}, nil).Once()

	// Each employee's items are replaced exactly once, so a second pass over a
	// PROCESSING run regenerates in place instead of duplicating rows.
	suite.mockRunRepo.On("ReplaceEmployeeItems", mock.Anything, run.RunID, "emp-1", itemsByEmployee["emp-1"]).
		Return(nil).Once()
	suite.mockRunRepo.On("ReplaceEmployeeItems", mock.Anything, run.RunID, "emp-2", itemsByEmployee["emp-2"]).
		Return(nil).Once()
	suite.mockRunRepo.On("UpsertRecord", mock.Anything, mock.AnythingOfType("domain.EmployeePayrollRecord")).Return(nil)

	suite.mockRunRepo.On("FindItemsByRunID", ctx, run.RunID).
		Return(append(itemsByEmployee["emp-1"], itemsByEmployee["emp-2"]...), nil).Once()
	suite.mockRunRepo.On("FindAdjustmentsByRunID", ctx, run.RunID).Return([]domain.PayrollAdjustment{}, nil).Once()
	suite.mockRunRepo.On("FindRecordsByRunID", ctx, run.RunID).Return(records, nil).Once()

	// No DRAFT -> PROCESSING transition happened, so the CAS still uses the
	// run's current version.
	suite.mockRunRepo.On("SaveRunState", ctx, mock.MatchedBy(func(r domain.PayrollRun) bool {
		return r.Status == domain.RunReview &&
			r.TotalEmployees == 2 &&
			r.TotalGrossPay.Equal(decimal.NewFromInt(3000)) &&
			r.TotalTaxes.Equal(decimal.NewFromInt(400)) &&
			r.TotalNetPay.Equal(decimal.NewFromInt(2600))
	}), int64(1)).Return(nil).Once()

	updated, err := suite.service.ProcessRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.RunReview, updated.Status)
	suite.Equal(2, updated.TotalEmployees)
	suite.Equal(int64(2), updated.Version)
	suite.mockRunRepo.AssertExpectations(suite.T())
	suite.mockGenerator.AssertExpectations(suite.T())
}

func (suite *RunServiceTestSuite) TestProcessRun_InvalidStatus() {
	ctx := context.Background()
	run := testRun(domain.RunPaid)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()

	updated, err := suite.service.ProcessRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *RunServiceTestSuite) TestProcessRun_NoEligibleEmployees() {
	ctx := context.Background()
	run := testRun(domain.RunDraft)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()
	suite.mockTaxYearRepo.On("FindTaxYearByID", ctx, "ty-1").Return(&domain.TaxYear{TaxYearID: "ty-1"}, nil).Once()
	suite.mockComponentRepo.On("ListComponentsByOrganization", ctx, testOrgID, true).
		Return([]domain.PayrollComponent{}, nil).Once()
	suite.mockDirectory.On("GetActiveEmployees", ctx, testOrgID).Return([]string{}, nil).Once()

	updated, err := suite.service.ProcessRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ApproveRun ---

func (suite *RunServiceTestSuite) TestApproveRun_Success() {
	ctx := context.Background()
	run := testRun(domain.RunReview)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()
	suite.mockRunRepo.On("SaveRunState", ctx, mock.MatchedBy(func(r domain.PayrollRun) bool {
		return r.Status == domain.RunApproved && r.ApprovedBy == "user-2" && r.ApprovedAt != nil
	}), int64(1)).Return(nil).Once()
	suite.mockNotifier.On("OnRunApproved", ctx, mock.MatchedBy(func(r domain.PayrollRun) bool {
		return r.Status == domain.RunApproved
	})).Return().Once()

	updated, err := suite.service.ApproveRun(ctx, testOrgID, run.RunID, "user-2")

	suite.Require().NoError(err)
	suite.Equal(domain.RunApproved, updated.Status)
	suite.Equal("user-2", updated.ApprovedBy)
	suite.Equal(int64(2), updated.Version)
	suite.mockRunRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *RunServiceTestSuite) TestApproveRun_SelfApprovalForbidden() {
	ctx := context.Background()
	run := testRun(domain.RunReview)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()

	updated, err := suite.service.ApproveRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRunRepo.AssertNotCalled(suite.T(), "SaveRunState", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RunServiceTestSuite) TestApproveRun_SelfApprovalAllowedWithoutSegregation() {
	ctx := context.Background()
	run := testRun(domain.RunReview)
	cfg := testConfig()
	cfg.SegregateDuties = false

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(cfg, nil).Once()
	suite.mockRunRepo.On("SaveRunState", ctx, mock.AnythingOfType("domain.PayrollRun"), int64(1)).Return(nil).Once()
	suite.mockNotifier.On("OnRunApproved", ctx, mock.AnythingOfType("domain.PayrollRun")).Return().Once()

	updated, err := suite.service.ApproveRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.RunApproved, updated.Status)
}

func (suite *RunServiceTestSuite) TestApproveRun_NotInReview() {
	ctx := context.Background()
	run := testRun(domain.RunDraft)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()

	updated, err := suite.service.ApproveRun(ctx, testOrgID, run.RunID, "user-2")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *RunServiceTestSuite) TestApproveRun_StaleVersionConflict() {
	ctx := context.Background()
	run := testRun(domain.RunReview)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockConfigRepo.On("FindLatestConfiguration", ctx, testOrgID).Return(testConfig(), nil).Once()
	suite.mockRunRepo.On("SaveRunState", ctx, mock.AnythingOfType("domain.PayrollRun"), int64(1)).
		Return(apperrors.ErrConflict).Once()

	updated, err := suite.service.ApproveRun(ctx, testOrgID, run.RunID, "user-2")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- PayRun ---

func (suite *RunServiceTestSuite) TestPayRun_Success() {
	ctx := context.Background()
	run := testRun(domain.RunApproved)
	records := []domain.EmployeePayrollRecord{{RecordID: "rec-1", EmployeeID: "emp-ok", NetPay: decimal.NewFromInt(900)}}

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockRunRepo.On("FindRecordsByRunID", ctx, run.RunID).Return(records, nil).Once()
	suite.mockDisburser.On("Disburse", ctx, *run, records).Return(nil).Once()
	suite.mockRunRepo.On("SaveRunState", ctx, mock.MatchedBy(func(r domain.PayrollRun) bool {
		return r.Status == domain.RunPaid && r.PaidAt != nil
	}), int64(1)).Return(nil).Once()
	suite.mockNotifier.On("OnRunPaid", ctx, mock.AnythingOfType("domain.PayrollRun")).Return().Once()

	updated, err := suite.service.PayRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.RunPaid, updated.Status)
	suite.mockDisburser.AssertExpectations(suite.T())
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *RunServiceTestSuite) TestPayRun_DisbursementFailureKeepsRunApproved() {
	ctx := context.Background()
	run := testRun(domain.RunApproved)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockRunRepo.On("FindRecordsByRunID", ctx, run.RunID).
		Return([]domain.EmployeePayrollRecord{}, nil).Once()
	suite.mockDisburser.On("Disburse", ctx, *run, mock.Anything).Return(errors.New("bank gateway unavailable")).Once()

	updated, err := suite.service.PayRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.mockRunRepo.AssertNotCalled(suite.T(), "SaveRunState", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RunServiceTestSuite) TestPayRun_NotApproved() {
	ctx := context.Background()
	run := testRun(domain.RunReview)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()

	updated, err := suite.service.PayRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

// --- CancelRun ---

func (suite *RunServiceTestSuite) TestCancelRun_VoidsItemsAndRecords() {
	ctx := context.Background()
	run := testRun(domain.RunReview)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()
	suite.mockRunRepo.On("SaveRunState", ctx, mock.MatchedBy(func(r domain.PayrollRun) bool {
		return r.Status == domain.RunCancelled && r.CancelledAt != nil
	}), int64(1)).Return(nil).Once()
	suite.mockRunRepo.On("VoidRunItems", ctx, run.RunID).Return(nil).Once()
	suite.mockRunRepo.On("VoidRunRecords", ctx, run.RunID).Return(nil).Once()

	updated, err := suite.service.CancelRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.RunCancelled, updated.Status)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *RunServiceTestSuite) TestCancelRun_PaidRunRejected() {
	ctx := context.Background()
	run := testRun(domain.RunPaid)

	suite.mockRunRepo.On("FindRunByID", ctx, run.RunID).Return(run, nil).Once()

	updated, err := suite.service.CancelRun(ctx, testOrgID, run.RunID, testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

// --- ListRuns ---

func (suite *RunServiceTestSuite) TestListRuns_DefaultLimit() {
	ctx := context.Background()

	suite.mockRunRepo.On("ListRunsByOrganization", ctx, testOrgID, 25, (*string)(nil)).
		Return([]domain.PayrollRun{*testRun(domain.RunDraft)}, nil, nil).Once()

	resp, err := suite.service.ListRuns(ctx, testOrgID, dto.ListRunsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Runs, 1)
	suite.Nil(resp.NextToken)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func TestRunService(t *testing.T) {
	suite.Run(t, new(RunServiceTestSuite))
}
