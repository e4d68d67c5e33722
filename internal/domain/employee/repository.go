package employee

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import "context"

// EmployeeRepository defines the read access payroll needs.
// All queries are scoped by company to prevent cross-company data access.
type EmployeeRepository interface {
	// Filter returns employees matching the filter, ordered by employee code.
	Filter(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
}
