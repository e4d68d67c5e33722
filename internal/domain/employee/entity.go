package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the payroll-relevant projection of an HR employee row.
// Payroll reads it and never writes it back.
type Employee struct {
	ID               string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	EmploymentType   EmploymentType
	EmploymentStatus EmploymentStatus
	SalaryType       SalaryType
	BaseSalary       *decimal.Decimal
	HourlyRate       *decimal.Decimal
	DailyRate        *decimal.Decimal
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentType string

const (
	EmploymentTypeSalary EmploymentType = "salary"
	EmploymentTypeWage   EmploymentType = "wage"
)

type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "monthly"
	SalaryTypeHourly  SalaryType = "hourly"
	SalaryTypeDaily   SalaryType = "daily"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// IsWage reports whether pay depends on approved timesheet hours.
func (e Employee) IsWage() bool {
	return e.EmploymentType == EmploymentTypeWage
}

// EmployeeFilter narrows Filter results. Empty IDs means every active employee
// of the company.
type EmployeeFilter struct {
	CompanyID  string
	IDs        []string
	ActiveOnly bool
}
