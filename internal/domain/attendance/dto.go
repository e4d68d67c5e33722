package attendance

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type ApproveTimesheetRequest struct {
	ID      string  `json:"-"`
	Version int     `json:"version"`
	Notes   *string `json:"notes,omitempty"`
}

func (r *ApproveTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "attendance id is required")
	}
	if r.Version < 1 {
		errs.Add("version", "version is required")
	}
	return errs.Err()
}

type OverrideTimesheetRequest struct {
	ID      string          `json:"-"`
	Version int             `json:"version"`
	Hours   decimal.Decimal `json:"hours"`
	Notes   string          `json:"notes"`
}

func (r *OverrideTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "attendance id is required")
	}
	if r.Version < 1 {
		errs.Add("version", "version is required")
	}
	return errs.Err()
}

type RejectTimesheetRequest struct {
	ID      string `json:"-"`
	Version int    `json:"version"`
	Reason  string `json:"reason"`
}

func (r *RejectTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "attendance id is required")
	}
	if r.Version < 1 {
		errs.Add("version", "version is required")
	}
	return errs.Err()
}

type TimesheetFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *TimesheetFilter) Validate() error {
	var errs validator.ValidationErrors
	var start, end time.Time
	var okStart, okEnd bool
	if f.StartDate != nil {
		if start, okStart = validator.IsValidDate(*f.StartDate); !okStart {
			errs.Add("start_date", "must be YYYY-MM-DD")
		}
	}
	if f.EndDate != nil {
		if end, okEnd = validator.IsValidDate(*f.EndDate); !okEnd {
			errs.Add("end_date", "must be YYYY-MM-DD")
		}
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("end_date", "must not be before start_date")
	}
	if f.Status != nil && !TimesheetStatus(*f.Status).IsValid() {
		errs.Add("status", "must be one of pending, approved, overridden, rejected")
	}
	if f.Page < 0 {
		errs.Add("page", "must be non-negative")
	}
	if f.Limit < 0 || f.Limit > 500 {
		errs.Add("limit", "must be between 0 and 500")
	}
	return errs.Err()
}

type TimesheetResponse struct {
	ID              string           `json:"id"`
	EmployeeID      string           `json:"employee_id"`
	EmployeeName    *string          `json:"employee_name,omitempty"`
	Date            string           `json:"date"`
	ClockIn         *string          `json:"clock_in_time,omitempty"`
	ClockOut        *string          `json:"clock_out_time,omitempty"`
	TotalHours      decimal.Decimal  `json:"total_hours"`
	TimesheetStatus string           `json:"timesheet_status"`
	ApprovedHours   *decimal.Decimal `json:"approved_hours,omitempty"`
	ApprovedBy      *string          `json:"approved_by,omitempty"`
	ApprovedByName  *string          `json:"approved_by_name,omitempty"`
	ApprovalNotes   *string          `json:"approval_notes,omitempty"`
	ApprovalDate    *string          `json:"approval_date,omitempty"`
	Version         int              `json:"version"`
}

type ListTimesheetResponse struct {
	Data       []TimesheetResponse `json:"data"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}
