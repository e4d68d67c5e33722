package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.date, a.clock_in, a.clock_out, a.total_hours,
	a.timesheet_status, a.approved_hours, a.approved_by, a.approved_by_name,
	a.approval_notes, a.approval_date, a.version, a.created_at, a.updated_at,
	e.full_name AS employee_name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.ClockIn, &att.ClockOut, &att.TotalHours,
		&att.TimesheetStatus, &att.ApprovedHours, &att.ApprovedBy, &att.ApprovedByName,
		&att.ApprovalNotes, &att.ApprovalDate, &att.Version, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	return att, err
}

// Filter implements attendance.AttendanceRepository.
func (a *attendanceRepository) Filter(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	where := []string{"a.company_id = $1"}
	args := []interface{}{filter.CompanyID}
	argIdx := 2

	if len(filter.EmployeeIDs) > 0 {
		where = append(where, fmt.Sprintf("a.employee_id = ANY($%d::uuid[])", argIdx))
		args = append(args, filter.EmployeeIDs)
		argIdx++
	}
	if filter.StartDate != nil {
		where = append(where, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where = append(where, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("a.timesheet_status = $%d", argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}
	baseWhere := strings.Join(where, " AND ")

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date ASC, a.employee_id ASC`, attendanceColumns, baseWhere)

	// Limit 0 means every match; payroll needs the whole period.
	if filter.Limit > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to filter attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	if !isUUID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// UpdateTimesheet implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateTimesheet(ctx context.Context, att attendance.Attendance, expectedVersion int) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET timesheet_status = $1,
			approved_hours = $2,
			approved_by = $3,
			approved_by_name = $4,
			approval_notes = $5,
			approval_date = $6,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $7 AND company_id = $8 AND version = $9
		RETURNING version, updated_at
	`

	err := q.QueryRow(ctx, query,
		string(att.TimesheetStatus),
		att.ApprovedHours,
		att.ApprovedBy,
		att.ApprovedByName,
		att.ApprovalNotes,
		att.ApprovalDate,
		att.ID,
		att.CompanyID,
		expectedVersion,
	).Scan(&att.Version, &att.UpdatedAt)
	if err == nil {
		return att, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to update timesheet: %w", err)
	}

	// No row matched: either the record is gone or someone else bumped the version.
	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attendances WHERE id = $1 AND company_id = $2)`,
		att.ID, att.CompanyID,
	).Scan(&exists); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check attendance existence: %w", err)
	}
	if !exists {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return attendance.Attendance{}, attendance.ErrVersionConflict
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
