package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrInvalidEmploymentType   = errors.New("invalid employment type")
	ErrInvalidSalaryType       = errors.New("salary type does not match employment type")
	ErrEmployeeHasNoBaseSalary = errors.New("employee has no base salary configured")
)
