package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Partial commits normally get a full result from the handler; this is the fallback.
	var partial *payroll.PartialCommitError
	if errors.As(err, &partial) {
		MultiStatus(w, partial.Error(), nil)
		return
	}

	var pending *payroll.TimesheetApprovalRequiredError
	if errors.As(err, &pending) {
		details := make(map[string]string, len(pending.Pending))
		for employeeID, ids := range pending.Pending {
			details[employeeID] = strings.Join(ids, ",")
		}
		ConflictWithDetails(w, "Timesheets must be decided before payroll", details)
		return
	}

	switch {
	// Auth
	case errors.Is(err, jwt.ErrInvalidClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Company membership required")
	case user.IsAuthorizationError(err):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidEmploymentType),
		errors.Is(err, employee.ErrInvalidSalaryType),
		errors.Is(err, employee.ErrEmployeeHasNoBaseSalary):
		ValidationError(w, map[string]string{"employee": err.Error()})

	// Timesheet domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrCompanyMismatch):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrVersionConflict):
		Conflict(w, "Attendance record was modified, reload and retry")
	case errors.Is(err, attendance.ErrInvalidTransition):
		Conflict(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists),
		errors.Is(err, payroll.ErrRunLocked),
		errors.Is(err, payroll.ErrNothingToRetry),
		errors.Is(err, payroll.ErrPreviewStale):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
