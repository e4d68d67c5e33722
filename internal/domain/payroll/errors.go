package payroll

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrRunNotFound                = errors.New("payroll run not found")
	ErrRunLocked                  = errors.New("another payroll commit for this period is in progress")
	ErrNothingToRetry             = errors.New("payroll run has no failed lines")
	ErrTimesheetApprovalRequired  = errors.New("timesheets must be approved, overridden or rejected before payroll")
	ErrPreviewStale               = errors.New("preview totals no longer match, regenerate the preview")
	ErrUnbalancedRecord           = errors.New("payroll record does not balance")
)

// TimesheetApprovalRequiredError lists the attendance records still pending,
// keyed by employee ID.
type TimesheetApprovalRequiredError struct {
	Pending map[string][]string
}

func (e *TimesheetApprovalRequiredError) Error() string {
	ids := make([]string, 0, len(e.Pending))
	for id := range e.Pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s (%d pending)", id, len(e.Pending[id])))
	}
	return fmt.Sprintf("%s: %s", ErrTimesheetApprovalRequired, strings.Join(parts, ", "))
}

func (e *TimesheetApprovalRequiredError) Is(target error) bool {
	return target == ErrTimesheetApprovalRequired
}

// CommitFailure is one line that could not be persisted.
type CommitFailure struct {
	Index      int
	EmployeeID string
	Err        error
}

// PartialCommitError is returned by Commit when at least one line failed.
// Result still lists the succeeded lines so only failures are retried.
type PartialCommitError struct {
	Result CommitResult
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("payroll run %s: %d of %d lines failed",
		e.Result.RunID, len(e.Result.Failed), len(e.Result.Failed)+len(e.Result.Succeeded))
}

func (e *PartialCommitError) Unwrap() []error {
	errs := make([]error, 0, len(e.Result.Failed))
	for _, f := range e.Result.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}
