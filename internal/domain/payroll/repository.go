package payroll

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll.
// All reads include companyID to prevent cross-company data access.
type PayrollRepository interface {
	// Payroll Records
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, companyID string, filter PayrollFilter) ([]PayrollRecord, int64, error)

	// GetPayrollRecordByPeriod finds the employee's record for exactly [start, end]
	GetPayrollRecordByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) (PayrollRecord, error)

	// Run log
	CreateRun(ctx context.Context, run Run, entries []RunEntry) (Run, error)
	GetRun(ctx context.Context, id string, companyID string) (Run, error)
	GetRunEntries(ctx context.Context, runID string, status *EntryStatus) ([]RunEntry, error)
	MarkEntrySucceeded(ctx context.Context, runID string, index int, recordID string) error
	MarkEntryFailed(ctx context.Context, runID string, index int, cause string) error
	UpdateRunStatus(ctx context.Context, runID string, status RunStatus) error

	// ListRunsByStatus returns runs in status last touched before updatedBefore, oldest first
	ListRunsByStatus(ctx context.Context, status RunStatus, updatedBefore time.Time, limit int) ([]Run, error)
}
