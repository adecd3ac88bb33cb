package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/paycove/payroll_engine/internal/core/domain"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
)

// --- Mock RunRepository ---

type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockRunRepository) FindRunStatus(ctx context.Context, runID string) (domain.RunStatus, error) {
	args := m.Called(ctx, runID)
	return args.Get(0).(domain.RunStatus), args.Error(1)
}

func (m *MockRunRepository) ListRunsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PayrollRun, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken)
	var runs []domain.PayrollRun
	if args.Get(0) != nil {
		runs = args.Get(0).([]domain.PayrollRun)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return runs, token, args.Error(2)
}

func (m *MockRunRepository) CreateRun(ctx context.Context, run domain.PayrollRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) SaveRunState(ctx context.Context, run domain.PayrollRun, expectedVersion int64) error {
	args := m.Called(ctx, run, expectedVersion)
	return args.Error(0)
}

func (m *MockRunRepository) AppendRunErrors(ctx context.Context, runID string, errs []domain.RunError) error {
	args := m.Called(ctx, runID, errs)
	return args.Error(0)
}

func (m *MockRunRepository) FindItemsByRunID(ctx context.Context, runID string) ([]domain.PayrollItem, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollItem), args.Error(1)
}

func (m *MockRunRepository) FindItemsByRunAndEmployee(ctx context.Context, runID, employeeID string) ([]domain.PayrollItem, error) {
	args := m.Called(ctx, runID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollItem), args.Error(1)
}

func (m *MockRunRepository) ReplaceEmployeeItems(ctx context.Context, runID, employeeID string, items []domain.PayrollItem) error {
	args := m.Called(ctx, runID, employeeID, items)
	return args.Error(0)
}

func (m *MockRunRepository) VoidRunItems(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}

func (m *MockRunRepository) FindRecordsByRunID(ctx context.Context, runID string) ([]domain.EmployeePayrollRecord, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeePayrollRecord), args.Error(1)
}

func (m *MockRunRepository) FindRecordByRunAndEmployee(ctx context.Context, runID, employeeID string) (*domain.EmployeePayrollRecord, error) {
	args := m.Called(ctx, runID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeePayrollRecord), args.Error(1)
}

func (m *MockRunRepository) UpsertRecord(ctx context.Context, record domain.EmployeePayrollRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRunRepository) VoidEmployeeRecord(ctx context.Context, runID, employeeID string) error {
	args := m.Called(ctx, runID, employeeID)
	return args.Error(0)
}

func (m *MockRunRepository) VoidRunRecords(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}

func (m *MockRunRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.PayrollAdjustment, error) {
	args := m.Called(ctx, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollAdjustment), args.Error(1)
}

func (m *MockRunRepository) FindAdjustmentsByRunID(ctx context.Context, runID string) ([]domain.PayrollAdjustment, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollAdjustment), args.Error(1)
}

func (m *MockRunRepository) SaveAdjustment(ctx context.Context, adjustment domain.PayrollAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockRunRepository) ApproveAdjustment(ctx context.Context, adjustment domain.PayrollAdjustment, record domain.EmployeePayrollRecord, run domain.PayrollRun, expectedVersion int64) error {
	args := m.Called(ctx, adjustment, record, run, expectedVersion)
	return args.Error(0)
}

func (m *MockRunRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockRunRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRunRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ComponentRepository ---

type MockComponentRepository struct {
	mock.Mock
}

func (m *MockComponentRepository) FindComponentByID(ctx context.Context, componentID string) (*domain.PayrollComponent, error) {
	args := m.Called(ctx, componentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollComponent), args.Error(1)
}

func (m *MockComponentRepository) ListComponentsByOrganization(ctx context.Context, organizationID string, activeOnly bool) ([]domain.PayrollComponent, error) {
	args := m.Called(ctx, organizationID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollComponent), args.Error(1)
}

func (m *MockComponentRepository) SaveComponent(ctx context.Context, component domain.PayrollComponent) error {
	args := m.Called(ctx, component)
	return args.Error(0)
}

func (m *MockComponentRepository) UpdateComponent(ctx context.Context, component domain.PayrollComponent) error {
	args := m.Called(ctx, component)
	return args.Error(0)
}

func (m *MockComponentRepository) SupersedeComponent(ctx context.Context, oldComponentID string, replacement domain.PayrollComponent) error {
	args := m.Called(ctx, oldComponentID, replacement)
	return args.Error(0)
}

func (m *MockComponentRepository) IsComponentReferenced(ctx context.Context, componentID string) (bool, error) {
	args := m.Called(ctx, componentID)
	return args.Bool(0), args.Error(1)
}

// --- Mock ProfileRepository ---

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindActiveProfile(ctx context.Context, organizationID, employeeID string, asOf time.Time) (*domain.EmployeePayProfile, error) {
	args := m.Called(ctx, organizationID, employeeID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeePayProfile), args.Error(1)
}

func (m *MockProfileRepository) FindProfilesByEmployee(ctx context.Context, organizationID, employeeID string) ([]domain.EmployeePayProfile, error) {
	args := m.Called(ctx, organizationID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeePayProfile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.EmployeePayProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// --- Mock TaxYearRepository ---

type MockTaxYearRepository struct {
	mock.Mock
}

func (m *MockTaxYearRepository) FindTaxYearByID(ctx context.Context, taxYearID string) (*domain.TaxYear, error) {
	args := m.Called(ctx, taxYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxYear), args.Error(1)
}

func (m *MockTaxYearRepository) FindActiveTaxYear(ctx context.Context, organizationID string, year int) (*domain.TaxYear, error) {
	args := m.Called(ctx, organizationID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxYear), args.Error(1)
}

func (m *MockTaxYearRepository) IsTaxYearReferenced(ctx context.Context, taxYearID string) (bool, error) {
	args := m.Called(ctx, taxYearID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaxYearRepository) SaveTaxYear(ctx context.Context, taxYear domain.TaxYear) error {
	args := m.Called(ctx, taxYear)
	return args.Error(0)
}

// --- Mock ConfigRepository ---

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) FindConfiguration(ctx context.Context, organizationID string, year int) (*domain.PayrollConfiguration, error) {
	args := m.Called(ctx, organizationID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollConfiguration), args.Error(1)
}

func (m *MockConfigRepository) FindLatestConfiguration(ctx context.Context, organizationID string) (*domain.PayrollConfiguration, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollConfiguration), args.Error(1)
}

func (m *MockConfigRepository) SaveConfiguration(ctx context.Context, config domain.PayrollConfiguration) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// --- Mock Generator ---

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateForEmployee(ctx context.Context, in dto.GenerationInput) (*dto.GenerationResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenerationResult), args.Error(1)
}

// --- Mock collaborators ---

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetActiveEmployees(ctx context.Context, organizationID string) ([]string, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAttendance struct {
	mock.Mock
}

func (m *MockAttendance) GetReportedHours(ctx context.Context, employeeID, runID string) (portssvc.ReportedHours, error) {
	args := m.Called(ctx, employeeID, runID)
	return args.Get(0).(portssvc.ReportedHours), args.Error(1)
}

type MockSales struct {
	mock.Mock
}

func (m *MockSales) GetReportedSales(ctx context.Context, employeeID, runID string) (decimal.Decimal, error) {
	args := m.Called(ctx, employeeID, runID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockDisburser struct {
	mock.Mock
}

func (m *MockDisburser) Disburse(ctx context.Context, run domain.PayrollRun, records []domain.EmployeePayrollRecord) error {
	args := m.Called(ctx, run, records)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OnRunApproved(ctx context.Context, run domain.PayrollRun) {
	m.Called(ctx, run)
}

func (m *MockNotifier) OnRunPaid(ctx context.Context, run domain.PayrollRun) {
	m.Called(ctx, run)
}

func (m *MockNotifier) OnRunFailed(ctx context.Context, run domain.PayrollRun, errorLog []domain.RunError) {
	m.Called(ctx, run, errorLog)
}
