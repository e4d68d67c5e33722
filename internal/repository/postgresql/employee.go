package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, employee_code, full_name, employment_type, employment_status,
	salary_type, base_salary, hourly_rate, daily_rate, hire_date,
	created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.EmploymentType, &emp.EmploymentStatus,
		&emp.SalaryType, &emp.BaseSalary, &emp.HourlyRate, &emp.DailyRate, &emp.HireDate,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

// Filter implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Filter(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 AND deleted_at IS NULL`
	args := []interface{}{filter.CompanyID}
	argIdx := 2

	if len(filter.IDs) > 0 {
		// Malformed ids cannot match a uuid column; drop them so the caller
		// sees them as not found instead of a cast error.
		ids := make([]string, 0, len(filter.IDs))
		for _, id := range filter.IDs {
			if isUUID(id) {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil, nil
		}
		query += fmt.Sprintf(" AND id = ANY($%d::uuid[])", argIdx)
		args = append(args, ids)
		argIdx++
	}
	if filter.ActiveOnly {
		query += fmt.Sprintf(" AND employment_status = $%d", argIdx)
		args = append(args, string(employee.EmploymentStatusActive))
	}
	query += " ORDER BY employee_code ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return emp, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
