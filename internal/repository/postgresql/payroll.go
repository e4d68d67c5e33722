package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PAYROLL RECORDS ==========

const recordColumns = `
	pr.id, pr.run_id, pr.employee_id, pr.company_id, pr.period_start, pr.period_end, pr.payment_date,
	pr.payroll_frequency, pr.employment_type, pr.base_salary, pr.prorated_salary,
	pr.hours_recorded, pr.hours_worked, pr.hours_approved,
	pr.total_allowances, pr.total_bonuses, pr.overtime_pay, pr.weekend_pay, pr.holiday_pay,
	pr.gross_pay, pr.nassit_employee, pr.nassit_employer, pr.paye_tax, pr.taxable_income,
	pr.effective_tax_rate, pr.custom_deductions, pr.total_deductions, pr.net_pay, pr.employer_cost,
	pr.allowances_detail, pr.bonuses_detail, pr.deductions_detail, pr.status, pr.flags,
	pr.created_by, pr.created_at,
	e.full_name AS employee_name, e.employee_code`

func scanRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var allowancesBytes, bonusesBytes, deductionsBytes []byte
	var flags []string
	err := row.Scan(
		&rec.ID, &rec.RunID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodStart, &rec.PeriodEnd, &rec.PaymentDate,
		&rec.Frequency, &rec.EmploymentType, &rec.BaseSalary, &rec.ProratedSalary,
		&rec.HoursRecorded, &rec.HoursWorked, &rec.HoursApproved,
		&rec.TotalAllowances, &rec.TotalBonuses, &rec.OvertimePay, &rec.WeekendPay, &rec.HolidayPay,
		&rec.GrossPay, &rec.NASSITEmployee, &rec.NASSITEmployer, &rec.PAYETax, &rec.TaxableIncome,
		&rec.EffectiveTaxRate, &rec.CustomDeductions, &rec.TotalDeductions, &rec.NetPay, &rec.EmployerCost,
		&allowancesBytes, &bonusesBytes, &deductionsBytes, &rec.Status, &flags,
		&rec.CreatedBy, &rec.CreatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if err := json.Unmarshal(allowancesBytes, &rec.AllowancesDetail); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode allowances_detail of payroll record %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(bonusesBytes, &rec.BonusesDetail); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode bonuses_detail of payroll record %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(deductionsBytes, &rec.DeductionsDetail); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode deductions_detail of payroll record %s: %w", rec.ID, err)
	}
	for _, f := range flags {
		rec.Flags = append(rec.Flags, payroll.Flag(f))
	}
	return rec, nil
}

func detailJSON(m map[string]decimal.Decimal) []byte {
	if len(m) == 0 {
		return []byte("{}")
	}
	b, _ := json.Marshal(m)
	return b
}

// CreatePayrollRecord implements payroll.PayrollRepository.
func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	flags := make([]string, 0, len(record.Flags))
	for _, f := range record.Flags {
		flags = append(flags, string(f))
	}

	query := `
		INSERT INTO payroll_records (
			run_id, employee_id, company_id, period_start, period_end, payment_date,
			payroll_frequency, employment_type, base_salary, prorated_salary,
			hours_recorded, hours_worked, hours_approved,
			total_allowances, total_bonuses, overtime_pay, weekend_pay, holiday_pay,
			gross_pay, nassit_employee, nassit_employer, paye_tax, taxable_income,
			effective_tax_rate, custom_deductions, total_deductions, net_pay, employer_cost,
			allowances_detail, bonuses_detail, deductions_detail, status, flags, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		record.RunID, record.EmployeeID, record.CompanyID, record.PeriodStart, record.PeriodEnd, record.PaymentDate,
		string(record.Frequency), record.EmploymentType, record.BaseSalary, record.ProratedSalary,
		record.HoursRecorded, record.HoursWorked, record.HoursApproved,
		record.TotalAllowances, record.TotalBonuses, record.OvertimePay, record.WeekendPay, record.HolidayPay,
		record.GrossPay, record.NASSITEmployee, record.NASSITEmployer, record.PAYETax, record.TaxableIncome,
		record.EffectiveTaxRate, record.CustomDeductions, record.TotalDeductions, record.NetPay, record.EmployerCost,
		detailJSON(record.AllowancesDetail), detailJSON(record.BonusesDetail), detailJSON(record.DeductionsDetail),
		string(record.Status), flags, record.CreatedBy,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uk_employee_period" {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// GetPayrollRecordByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	if !isUUID(id) {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1 AND pr.company_id = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

// GetPayrollRecordByPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetPayrollRecordByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) (payroll.PayrollRecord, error) {
	if !isUUID(employeeID) {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.company_id = $1 AND pr.employee_id = $2 AND pr.period_start = $3 AND pr.period_end = $4
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, companyID, employeeID, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}
	return rec, nil
}

// ListPayrollRecords implements payroll.PayrollRepository.
func (r *payrollRepository) ListPayrollRecords(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	if (filter.RunID != nil && !isUUID(*filter.RunID)) || (filter.EmployeeID != nil && !isUUID(*filter.EmployeeID)) {
		return nil, 0, nil
	}
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.RunID != nil {
		baseQuery += fmt.Sprintf(" AND pr.run_id = $%d", argIdx)
		args = append(args, *filter.RunID)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.PeriodStart != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_start >= $%d::date", argIdx)
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_end <= $%d::date", argIdx)
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY pr.period_start DESC, e.employee_code ASC
		LIMIT $%d OFFSET $%d
	`, recordColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, totalCount, nil
}

// ========== RUN LOG ==========

// CreateRun implements payroll.PayrollRepository. The header and every entry
// are written in one transaction so a run never exists without its lines.
func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.Run, entries []payroll.RunEntry) (payroll.Run, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		err := q.QueryRow(ctx, `
			INSERT INTO payroll_runs (id, company_id, period_start, period_end, payroll_frequency, status, line_count, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at
		`, run.ID, run.CompanyID, run.PeriodStart, run.PeriodEnd, string(run.Frequency), string(run.Status), run.LineCount, run.CreatedBy,
		).Scan(&run.CreatedAt, &run.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert payroll run: %w", err)
		}

		batch := &pgx.Batch{}
		for _, entry := range entries {
			line, err := json.Marshal(entry.Line)
			if err != nil {
				return fmt.Errorf("failed to encode line %d: %w", entry.LineIndex, err)
			}
			batch.Queue(`
				INSERT INTO payroll_run_entries (run_id, line_index, employee_id, status, line)
				VALUES ($1, $2, $3, $4, $5)
			`, run.ID, entry.LineIndex, entry.EmployeeID, string(entry.Status), line)
		}
		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert payroll run entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.Run{}, err
	}
	return run, nil
}

// GetRun implements payroll.PayrollRepository.
func (r *payrollRepository) GetRun(ctx context.Context, id string, companyID string) (payroll.Run, error) {
	if !isUUID(id) {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_start, period_end, payroll_frequency, status, line_count, created_by, created_at, updated_at
		FROM payroll_runs
		WHERE id = $1 AND company_id = $2
	`

	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return run, nil
}

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	err := row.Scan(
		&run.ID, &run.CompanyID, &run.PeriodStart, &run.PeriodEnd, &run.Frequency, &run.Status,
		&run.LineCount, &run.CreatedBy, &run.CreatedAt, &run.UpdatedAt,
	)
	return run, err
}

// GetRunEntries implements payroll.PayrollRepository.
func (r *payrollRepository) GetRunEntries(ctx context.Context, runID string, status *payroll.EntryStatus) ([]payroll.RunEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT run_id, line_index, employee_id, status, record_id, last_error, attempts, line, updated_at
		FROM payroll_run_entries
		WHERE run_id = $1
	`
	args := []interface{}{runID}
	if status != nil {
		query += " AND status = $2"
		args = append(args, string(*status))
	}
	query += " ORDER BY line_index ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll run entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.RunEntry
	for rows.Next() {
		var entry payroll.RunEntry
		var line []byte
		if err := rows.Scan(
			&entry.RunID, &entry.LineIndex, &entry.EmployeeID, &entry.Status, &entry.RecordID,
			&entry.LastError, &entry.Attempts, &line, &entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll run entry: %w", err)
		}
		if err := json.Unmarshal(line, &entry.Line); err != nil {
			return nil, fmt.Errorf("failed to decode line %d of run %s: %w", entry.LineIndex, runID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll run entries: %w", err)
	}
	return entries, nil
}

// MarkEntrySucceeded implements payroll.PayrollRepository.
func (r *payrollRepository) MarkEntrySucceeded(ctx context.Context, runID string, index int, recordID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_run_entries
		SET status = $1, record_id = $2, last_error = NULL, attempts = attempts + 1, updated_at = NOW()
		WHERE run_id = $3 AND line_index = $4
	`, string(payroll.EntryStatusSucceeded), recordID, runID, index)
	if err != nil {
		return fmt.Errorf("failed to mark payroll run entry succeeded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

// MarkEntryFailed implements payroll.PayrollRepository.
func (r *payrollRepository) MarkEntryFailed(ctx context.Context, runID string, index int, cause string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_run_entries
		SET status = $1, last_error = $2, attempts = attempts + 1, updated_at = NOW()
		WHERE run_id = $3 AND line_index = $4
	`, string(payroll.EntryStatusFailed), cause, runID, index)
	if err != nil {
		return fmt.Errorf("failed to mark payroll run entry failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

// UpdateRunStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateRunStatus(ctx context.Context, runID string, status payroll.RunStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payroll_runs SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), runID)
	if err != nil {
		return fmt.Errorf("failed to update payroll run status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

// ListRunsByStatus implements payroll.PayrollRepository. Oldest first.
func (r *payrollRepository) ListRunsByStatus(ctx context.Context, status payroll.RunStatus, updatedBefore time.Time, limit int) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, company_id, period_start, period_end, payroll_frequency, status, line_count, created_by, created_at, updated_at
		FROM payroll_runs
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at ASC
		LIMIT $3
	`, string(status), updatedBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll runs: %w", err)
	}
	return runs, nil
}
