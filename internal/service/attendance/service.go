package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/metrics"
)

type TimesheetServiceImpl struct {
	attendance.AttendanceRepository
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewTimesheetService(attendanceRepository attendance.AttendanceRepository, m *metrics.Metrics, logger *slog.Logger) *TimesheetServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimesheetServiceImpl{
		AttendanceRepository: attendanceRepository,
		metrics:              m,
		logger:               logger,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// Approve implements attendance.TimesheetService.
func (t *TimesheetServiceImpl) Approve(ctx context.Context, approver user.Approver, req attendance.ApproveTimesheetRequest) (attendance.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimesheetResponse{}, err
	}
	return t.transition(ctx, approver, attendance.ActionApprove, req.ID, req.Version, func(att attendance.Attendance, now time.Time) (attendance.Attendance, error) {
		return attendance.Approve(att, approver, req.Notes, now)
	})
}

// Override implements attendance.TimesheetService.
func (t *TimesheetServiceImpl) Override(ctx context.Context, approver user.Approver, req attendance.OverrideTimesheetRequest) (attendance.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimesheetResponse{}, err
	}
	return t.transition(ctx, approver, attendance.ActionOverride, req.ID, req.Version, func(att attendance.Attendance, now time.Time) (attendance.Attendance, error) {
		return attendance.Override(att, approver, req.Hours, req.Notes, now)
	})
}

// Reject implements attendance.TimesheetService.
func (t *TimesheetServiceImpl) Reject(ctx context.Context, approver user.Approver, req attendance.RejectTimesheetRequest) (attendance.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimesheetResponse{}, err
	}
	return t.transition(ctx, approver, attendance.ActionReject, req.ID, req.Version, func(att attendance.Attendance, now time.Time) (attendance.Attendance, error) {
		return attendance.Reject(att, approver, req.Reason, now)
	})
}

type transitionFunc func(att attendance.Attendance, now time.Time) (attendance.Attendance, error)

// transition loads the record, checks the caller's version, applies apply and
// writes the result back guarded by that same version.
func (t *TimesheetServiceImpl) transition(ctx context.Context, approver user.Approver, action attendance.Action, id string, version int, apply transitionFunc) (resp attendance.TimesheetResponse, err error) {
	defer func() {
		outcome := "ok"
		switch {
		case err == nil:
		case errors.Is(err, attendance.ErrVersionConflict):
			outcome = "conflict"
		case errors.Is(err, attendance.ErrInvalidTransition):
			outcome = "invalid"
		default:
			outcome = "error"
		}
		t.metrics.IncrementTransition(string(action), outcome)
	}()

	if !approver.Valid() {
		return attendance.TimesheetResponse{}, user.ErrApprovalCapabilityRequired
	}

	current, err := t.AttendanceRepository.GetByID(ctx, id, approver.CompanyID())
	if err != nil {
		return attendance.TimesheetResponse{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	if current.Version != version {
		return attendance.TimesheetResponse{}, attendance.ErrVersionConflict
	}

	next, err := apply(current, t.now())
	if err != nil {
		return attendance.TimesheetResponse{}, err
	}

	updated, err := t.AttendanceRepository.UpdateTimesheet(ctx, next, version)
	if err != nil {
		return attendance.TimesheetResponse{}, fmt.Errorf("failed to update timesheet: %w", err)
	}

	t.logger.InfoContext(ctx, "timesheet transitioned",
		"attendance_id", updated.ID,
		"employee_id", updated.EmployeeID,
		"action", action,
		"from", current.TimesheetStatus,
		"to", updated.TimesheetStatus,
		"approved_by", approver.UserID(),
		"version", updated.Version,
	)

	return toResponse(updated), nil
}

// GetTimesheet implements attendance.TimesheetService.
func (t *TimesheetServiceImpl) GetTimesheet(ctx context.Context, actor user.Actor, id string) (attendance.TimesheetResponse, error) {
	if actor.CompanyID == "" {
		return attendance.TimesheetResponse{}, user.ErrCompanyIDRequired
	}

	att, err := t.AttendanceRepository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return attendance.TimesheetResponse{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	if !actor.Can(user.PermissionTimesheetViewAll) {
		if !actor.Can(user.PermissionTimesheetViewOwn) || actor.EmployeeID == nil || *actor.EmployeeID != att.EmployeeID {
			return attendance.TimesheetResponse{}, user.ErrInsufficientPermissions
		}
	}

	return toResponse(att), nil
}

// ListTimesheets implements attendance.TimesheetService.
func (t *TimesheetServiceImpl) ListTimesheets(ctx context.Context, actor user.Actor, filter attendance.TimesheetFilter) (attendance.ListTimesheetResponse, error) {
	if actor.CompanyID == "" {
		return attendance.ListTimesheetResponse{}, user.ErrCompanyIDRequired
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListTimesheetResponse{}, err
	}

	criteria := attendance.AttendanceFilter{
		CompanyID: actor.CompanyID,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	if criteria.Page == 0 {
		criteria.Page = 1
	}
	if criteria.Limit == 0 {
		criteria.Limit = 20
	}

	switch {
	case actor.Can(user.PermissionTimesheetViewAll):
		if filter.EmployeeID != nil {
			criteria.EmployeeIDs = []string{*filter.EmployeeID}
		}
	case actor.Can(user.PermissionTimesheetViewOwn) && actor.EmployeeID != nil:
		// Employees only ever see their own days.
		criteria.EmployeeIDs = []string{*actor.EmployeeID}
	default:
		return attendance.ListTimesheetResponse{}, user.ErrInsufficientPermissions
	}

	if filter.StartDate != nil {
		start, _ := time.Parse("2006-01-02", *filter.StartDate)
		criteria.StartDate = &start
	}
	if filter.EndDate != nil {
		end, _ := time.Parse("2006-01-02", *filter.EndDate)
		criteria.EndDate = &end
	}
	if filter.Status != nil {
		status := attendance.TimesheetStatus(*filter.Status)
		criteria.Status = &status
	}

	records, total, err := t.AttendanceRepository.Filter(ctx, criteria)
	if err != nil {
		return attendance.ListTimesheetResponse{}, fmt.Errorf("failed to filter attendance: %w", err)
	}

	data := make([]attendance.TimesheetResponse, 0, len(records))
	for _, r := range records {
		data = append(data, toResponse(r))
	}

	return attendance.ListTimesheetResponse{
		Data:       data,
		TotalCount: total,
		Page:       criteria.Page,
		Limit:      criteria.Limit,
	}, nil
}

// ForPeriod implements attendance.TimesheetService.
func (t *TimesheetServiceImpl) ForPeriod(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time) ([]attendance.Attendance, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	records, _, err := t.AttendanceRepository.Filter(ctx, attendance.AttendanceFilter{
		CompanyID:   companyID,
		EmployeeIDs: employeeIDs,
		StartDate:   &start,
		EndDate:     &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter attendance for period: %w", err)
	}
	return records, nil
}

func toResponse(a attendance.Attendance) attendance.TimesheetResponse {
	return attendance.TimesheetResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		EmployeeName:    a.EmployeeName,
		Date:            a.Date.Format("2006-01-02"),
		ClockIn:         timePtrToString(a.ClockIn),
		ClockOut:        timePtrToString(a.ClockOut),
		TotalHours:      a.TotalHours,
		TimesheetStatus: string(a.TimesheetStatus),
		ApprovedHours:   a.ApprovedHours,
		ApprovedBy:      a.ApprovedBy,
		ApprovedByName:  a.ApprovedByName,
		ApprovalNotes:   a.ApprovalNotes,
		ApprovalDate:    timePtrToString(a.ApprovalDate),
		Version:         a.Version,
	}
}

var _ attendance.TimesheetService = (*TimesheetServiceImpl)(nil)
