package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portsrepo "github.com/paycove/payroll_engine/internal/core/ports/repositories"
	"github.com/paycove/payroll_engine/internal/utils/pagination"
)

// PgxRunRepository persists payroll runs, their items, per-employee records
// and adjustments.
type PgxRunRepository struct {
	BaseRepository
}

// newPgxRunRepository creates a new repository for payroll run data.
func newPgxRunRepository(pool *pgxpool.Pool) portsrepo.RunRepositoryWithTx {
	return &PgxRunRepository{BaseRepository{Pool: pool}}
}

const runColumns = `run_id, organization_id, period_start, period_end, run_type, status, tax_year_id,
	total_employees, total_gross_pay, total_deductions, total_taxes, total_net_pay, error_log,
	prepared_by, approved_by, approved_at, paid_at, cancelled_at, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRun(row pgx.Row) (*domain.PayrollRun, error) {
	var run domain.PayrollRun
	err := row.Scan(
		&run.RunID,
		&run.OrganizationID,
		&run.PeriodStart,
		&run.PeriodEnd,
		&run.RunType,
		&run.Status,
		&run.TaxYearID,
		&run.TotalEmployees,
		&run.TotalGrossPay,
		&run.TotalDeductions,
		&run.TotalTaxes,
		&run.TotalNetPay,
		&run.ErrorLog,
		&run.PreparedBy,
		&run.ApprovedBy,
		&run.ApprovedAt,
		&run.PaidAt,
		&run.CancelledAt,
		&run.Version,
		&run.CreatedAt,
		&run.CreatedBy,
		&run.LastUpdatedAt,
		&run.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// FindRunByID retrieves a run by its ID.
func (r *PgxRunRepository) FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE run_id = $1;`
	run, err := scanRun(r.Pool.QueryRow(ctx, query, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find run by ID %s: %w", runID, err)
	}
	return run, nil
}

// FindRunStatus retrieves only the current status of a run.
func (r *PgxRunRepository) FindRunStatus(ctx context.Context, runID string) (domain.RunStatus, error) {
	var status domain.RunStatus
	err := r.Pool.QueryRow(ctx, `SELECT status FROM payroll_runs WHERE run_id = $1;`, runID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find run status for %s: %w", runID, err)
	}
	return status, nil
}

// ListRunsByOrganization retrieves a page of runs, newest first, using a
// keyset cursor on (created_at, run_id).
func (r *PgxRunRepository) ListRunsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PayrollRun, *string, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if nextToken != nil && *nextToken != "" {
		createdAt, runID, err := pagination.DecodeRunToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, run_id) < ($2, $3)`
		args = append(args, createdAt, runID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, run_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query runs for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	runs := []domain.PayrollRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	var token *string
	if len(runs) > limit {
		runs = runs[:limit]
		last := runs[len(runs)-1]
		t := pagination.EncodeRunToken(last.CreatedAt, last.RunID)
		token = &t
	}
	return runs, token, nil
}

// CreateRun persists a new run in DRAFT state. The partial unique index on
// non-cancelled (organization, period, run type) rows surfaces as ErrDuplicate.
func (r *PgxRunRepository) CreateRun(ctx context.Context, run domain.PayrollRun) error {
	query := `
		INSERT INTO payroll_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	// A nil log must land as an empty jsonb array so later appends concatenate.
	if run.ErrorLog == nil {
		run.ErrorLog = []domain.RunError{}
	}
	_, err := r.Pool.Exec(ctx, query,
		run.RunID,
		run.OrganizationID,
		run.PeriodStart,
		run.PeriodEnd,
		run.RunType,
		run.Status,
		run.TaxYearID,
		run.TotalEmployees,
		run.TotalGrossPay,
		run.TotalDeductions,
		run.TotalTaxes,
		run.TotalNetPay,
		run.ErrorLog,
		run.PreparedBy,
		run.ApprovedBy,
		run.ApprovedAt,
		run.PaidAt,
		run.CancelledAt,
		run.Version,
		run.CreatedAt,
		run.CreatedBy,
		run.LastUpdatedAt,
		run.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapDuplicate(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: an active run already exists for this period and type", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert run %s: %w", run.RunID, err)
	}
	return nil
}

// SaveRunState updates a run's status, totals and lifecycle stamps with a
// compare-and-swap on the version counter. The error log is owned by
// AppendRunErrors and is deliberately not touched here.
func (r *PgxRunRepository) SaveRunState(ctx context.Context, run domain.PayrollRun, expectedVersion int64) error {
	query := `
		UPDATE payroll_runs
		SET status = $1, total_employees = $2, total_gross_pay = $3, total_deductions = $4,
			total_taxes = $5, total_net_pay = $6, prepared_by = $7, approved_by = $8,
			approved_at = $9, paid_at = $10, cancelled_at = $11, version = version + 1,
			last_updated_at = $12, last_updated_by = $13
		WHERE run_id = $14 AND version = $15;
	`
	tag, err := r.Pool.Exec(ctx, query,
		run.Status,
		run.TotalEmployees,
		run.TotalGrossPay,
		run.TotalDeductions,
		run.TotalTaxes,
		run.TotalNetPay,
		run.PreparedBy,
		run.ApprovedBy,
		run.ApprovedAt,
		run.PaidAt,
		run.CancelledAt,
		run.LastUpdatedAt,
		run.LastUpdatedBy,
		run.RunID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", run.RunID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the run vanished or another writer advanced the version.
		if _, err := r.FindRunStatus(ctx, run.RunID); errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}

// AppendRunErrors appends entries to the run's ordered error log.
func (r *PgxRunRepository) AppendRunErrors(ctx context.Context, runID string, errs []domain.RunError) error {
	if len(errs) == 0 {
		return nil
	}
	query := `UPDATE payroll_runs SET error_log = error_log || $2::jsonb WHERE run_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, runID, errs)
	if err != nil {
		return fmt.Errorf("failed to append run errors for %s: %w", runID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const itemColumns = `item_id, run_id, employee_id, component_id, component_name, item_type,
	quantity, rate, amount, is_taxable, is_pretax, sort_order, is_void,
	created_at, created_by, last_updated_at, last_updated_by`

func scanItem(row pgx.Row) (*domain.PayrollItem, error) {
	var item domain.PayrollItem
	err := row.Scan(
		&item.ItemID,
		&item.RunID,
		&item.EmployeeID,
		&item.ComponentID,
		&item.ComponentName,
		&item.ItemType,
		&item.Quantity,
		&item.Rate,
		&item.Amount,
		&item.IsTaxable,
		&item.IsPretax,
		&item.SortOrder,
		&item.IsVoid,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PgxRunRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]domain.PayrollItem, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll items: %w", err)
	}
	defer rows.Close()

	items := []domain.PayrollItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payroll item rows: %w", err)
	}
	return items, nil
}

// FindItemsByRunID retrieves all non-void items for a run.
func (r *PgxRunRepository) FindItemsByRunID(ctx context.Context, runID string) ([]domain.PayrollItem, error) {
	query := `SELECT ` + itemColumns + ` FROM payroll_items
		WHERE run_id = $1 AND NOT is_void
		ORDER BY employee_id, sort_order, item_id;`
	return r.queryItems(ctx, query, runID)
}

// FindItemsByRunAndEmployee retrieves one employee's non-void items in a run.
func (r *PgxRunRepository) FindItemsByRunAndEmployee(ctx context.Context, runID, employeeID string) ([]domain.PayrollItem, error) {
	query := `SELECT ` + itemColumns + ` FROM payroll_items
		WHERE run_id = $1 AND employee_id = $2 AND NOT is_void
		ORDER BY sort_order, item_id;`
	return r.queryItems(ctx, query, runID, employeeID)
}

// ReplaceEmployeeItems voids the employee's existing items and inserts the
// replacements in one database transaction.
func (r *PgxRunRepository) ReplaceEmployeeItems(ctx context.Context, runID, employeeID string, items []domain.PayrollItem) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	voidQuery := `UPDATE payroll_items SET is_void = TRUE WHERE run_id = $1 AND employee_id = $2 AND NOT is_void;`
	if _, err := tx.Exec(ctx, voidQuery, runID, employeeID); err != nil {
		return fmt.Errorf("failed to void items for employee %s in run %s: %w", employeeID, runID, err)
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO payroll_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	for _, item := range items {
		batch.Queue(insertQuery,
			item.ItemID,
			item.RunID,
			item.EmployeeID,
			item.ComponentID,
			item.ComponentName,
			item.ItemType,
			item.Quantity,
			item.Rate,
			item.Amount,
			item.IsTaxable,
			item.IsPretax,
			item.SortOrder,
			item.IsVoid,
			item.CreatedAt,
			item.CreatedBy,
			item.LastUpdatedAt,
			item.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items for employee %s in run %s: %w", employeeID, runID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit item replacement for run %s: %w", runID, err)
	}
	return nil
}

// VoidRunItems flags every item of a run as void.
func (r *PgxRunRepository) VoidRunItems(ctx context.Context, runID string) error {
	query := `UPDATE payroll_items SET is_void = TRUE WHERE run_id = $1 AND NOT is_void;`
	if _, err := r.Pool.Exec(ctx, query, runID); err != nil {
		return fmt.Errorf("failed to void items for run %s: %w", runID, err)
	}
	return nil
}

const recordColumns = `record_id, run_id, employee_id, gross_pay, total_deductions, total_taxes,
	net_pay, hours_worked, overtime_hours, is_void,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRecord(row pgx.Row) (*domain.EmployeePayrollRecord, error) {
	var rec domain.EmployeePayrollRecord
	err := row.Scan(
		&rec.RecordID,
		&rec.RunID,
		&rec.EmployeeID,
		&rec.GrossPay,
		&rec.TotalDeductions,
		&rec.TotalTaxes,
		&rec.NetPay,
		&rec.HoursWorked,
		&rec.OvertimeHours,
		&rec.IsVoid,
		&rec.CreatedAt,
		&rec.CreatedBy,
		&rec.LastUpdatedAt,
		&rec.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindRecordsByRunID retrieves all non-void records for a run.
func (r *PgxRunRepository) FindRecordsByRunID(ctx context.Context, runID string) ([]domain.EmployeePayrollRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM employee_payroll_records
		WHERE run_id = $1 AND NOT is_void
		ORDER BY employee_id;`
	rows, err := r.Pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records for run %s: %w", runID, err)
	}
	defer rows.Close()

	records := []domain.EmployeePayrollRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return records, nil
}

// FindRecordByRunAndEmployee retrieves one employee's record in a run.
func (r *PgxRunRepository) FindRecordByRunAndEmployee(ctx context.Context, runID, employeeID string) (*domain.EmployeePayrollRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM employee_payroll_records
		WHERE run_id = $1 AND employee_id = $2 AND NOT is_void;`
	rec, err := scanRecord(r.Pool.QueryRow(ctx, query, runID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record for employee %s in run %s: %w", employeeID, runID, err)
	}
	return rec, nil
}

// UpsertRecord inserts or replaces the record for (run, employee).
func (r *PgxRunRepository) UpsertRecord(ctx context.Context, record domain.EmployeePayrollRecord) error {
	return upsertRecord(ctx, r.Pool, record)
}

// execer is the subset of pgx shared by a pool and a transaction, so the
// record upsert can run standalone or inside an adjustment approval.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func upsertRecord(ctx context.Context, q execer, record domain.EmployeePayrollRecord) error {
	query := `
		INSERT INTO employee_payroll_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (run_id, employee_id) DO UPDATE
		SET gross_pay = EXCLUDED.gross_pay, total_deductions = EXCLUDED.total_deductions,
			total_taxes = EXCLUDED.total_taxes, net_pay = EXCLUDED.net_pay,
			hours_worked = EXCLUDED.hours_worked, overtime_hours = EXCLUDED.overtime_hours,
			is_void = FALSE, last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := q.Exec(ctx, query,
		record.RecordID,
		record.RunID,
		record.EmployeeID,
		record.GrossPay,
		record.TotalDeductions,
		record.TotalTaxes,
		record.NetPay,
		record.HoursWorked,
		record.OvertimeHours,
		record.IsVoid,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record for employee %s in run %s: %w", record.EmployeeID, record.RunID, err)
	}
	return nil
}

// VoidEmployeeRecord flags one employee's record in a run as void.
func (r *PgxRunRepository) VoidEmployeeRecord(ctx context.Context, runID, employeeID string) error {
	query := `UPDATE employee_payroll_records SET is_void = TRUE WHERE run_id = $1 AND employee_id = $2 AND NOT is_void;`
	if _, err := r.Pool.Exec(ctx, query, runID, employeeID); err != nil {
		return fmt.Errorf("failed to void record for employee %s in run %s: %w", employeeID, runID, err)
	}
	return nil
}

// VoidRunRecords flags every record of a run as void.
func (r *PgxRunRepository) VoidRunRecords(ctx context.Context, runID string) error {
	query := `UPDATE employee_payroll_records SET is_void = TRUE WHERE run_id = $1 AND NOT is_void;`
	if _, err := r.Pool.Exec(ctx, query, runID); err != nil {
		return fmt.Errorf("failed to void records for run %s: %w", runID, err)
	}
	return nil
}

const adjustmentColumns = `adjustment_id, run_id, employee_id, adjustment_type, amount, is_positive,
	is_taxable, reason, status, approved_by, approved_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAdjustment(row pgx.Row) (*domain.PayrollAdjustment, error) {
	var adj domain.PayrollAdjustment
	err := row.Scan(
		&adj.AdjustmentID,
		&adj.RunID,
		&adj.EmployeeID,
		&adj.Type,
		&adj.Amount,
		&adj.IsPositive,
		&adj.IsTaxable,
		&adj.Reason,
		&adj.Status,
		&adj.ApprovedBy,
		&adj.ApprovedAt,
		&adj.CreatedAt,
		&adj.CreatedBy,
		&adj.LastUpdatedAt,
		&adj.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

// FindAdjustmentByID retrieves an adjustment by its ID.
func (r *PgxRunRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.PayrollAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM payroll_adjustments WHERE adjustment_id = $1;`
	adj, err := scanAdjustment(r.Pool.QueryRow(ctx, query, adjustmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	return adj, nil
}

// FindAdjustmentsByRunID retrieves all adjustments for a run.
func (r *PgxRunRepository) FindAdjustmentsByRunID(ctx context.Context, runID string) ([]domain.PayrollAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM payroll_adjustments WHERE run_id = $1 ORDER BY created_at, adjustment_id;`
	rows, err := r.Pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments for run %s: %w", runID, err)
	}
	defer rows.Close()

	adjustments := []domain.PayrollAdjustment{}
	for rows.Next() {
		adj, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment row: %w", err)
		}
		adjustments = append(adjustments, *adj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment rows: %w", err)
	}
	return adjustments, nil
}

// SaveAdjustment persists a new pending adjustment.
func (r *PgxRunRepository) SaveAdjustment(ctx context.Context, adjustment domain.PayrollAdjustment) error {
	query := `
		INSERT INTO payroll_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		adjustment.AdjustmentID,
		adjustment.RunID,
		adjustment.EmployeeID,
		adjustment.Type,
		adjustment.Amount,
		adjustment.IsPositive,
		adjustment.IsTaxable,
		adjustment.Reason,
		adjustment.Status,
		adjustment.ApprovedBy,
		adjustment.ApprovedAt,
		adjustment.CreatedAt,
		adjustment.CreatedBy,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert adjustment %s: %w", adjustment.AdjustmentID, err)
	}
	return nil
}

// ApproveAdjustment writes the approval stamp, the recomputed employee record
// and the updated run totals in one database transaction, compare-and-swapping
// on the run version.
func (r *PgxRunRepository) ApproveAdjustment(ctx context.Context, adjustment domain.PayrollAdjustment, record domain.EmployeePayrollRecord, run domain.PayrollRun, expectedVersion int64) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	adjQuery := `
		UPDATE payroll_adjustments
		SET status = $1, approved_by = $2, approved_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE adjustment_id = $6;
	`
	tag, err := tx.Exec(ctx, adjQuery,
		adjustment.Status,
		adjustment.ApprovedBy,
		adjustment.ApprovedAt,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
		adjustment.AdjustmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update adjustment %s: %w", adjustment.AdjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := upsertRecord(ctx, tx, record); err != nil {
		return err
	}

	runQuery := `
		UPDATE payroll_runs
		SET total_employees = $1, total_gross_pay = $2, total_deductions = $3, total_taxes = $4,
			total_net_pay = $5, version = version + 1, last_updated_at = $6, last_updated_by = $7
		WHERE run_id = $8 AND version = $9;
	`
	tag, err = tx.Exec(ctx, runQuery,
		run.TotalEmployees,
		run.TotalGrossPay,
		run.TotalDeductions,
		run.TotalTaxes,
		run.TotalNetPay,
		run.LastUpdatedAt,
		run.LastUpdatedBy,
		run.RunID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update run totals for %s: %w", run.RunID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit adjustment approval for %s: %w", adjustment.AdjustmentID, err)
	}
	return nil
}
