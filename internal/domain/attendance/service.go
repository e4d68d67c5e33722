package attendance

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
)

// TimesheetService drives the timesheet approval state machine.
type TimesheetService interface {
	// Approve accepts recorded hours as approved hours
	Approve(ctx context.Context, approver user.Approver, req ApproveTimesheetRequest) (TimesheetResponse, error)

	// Override replaces recorded hours with caller-supplied hours
	Override(ctx context.Context, approver user.Approver, req OverrideTimesheetRequest) (TimesheetResponse, error)

	// Reject marks the day unpaid with a mandatory reason
	Reject(ctx context.Context, approver user.Approver, req RejectTimesheetRequest) (TimesheetResponse, error)

	GetTimesheet(ctx context.Context, actor user.Actor, id string) (TimesheetResponse, error)
	ListTimesheets(ctx context.Context, actor user.Actor, filter TimesheetFilter) (ListTimesheetResponse, error)

	// ForPeriod returns every record of the given employees dated within
	// [start, end], regardless of status.
	ForPeriod(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time) ([]Attendance, error)
}
