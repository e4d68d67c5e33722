package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one employee's record for one calendar day. Capture creates it
// in TimesheetStatusPending; only the timesheet transitions mutate it afterward.
type Attendance struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	Date            time.Time
	ClockIn         *time.Time
	ClockOut        *time.Time
	TotalHours      decimal.Decimal
	TimesheetStatus TimesheetStatus
	ApprovedHours   *decimal.Decimal // nil while pending or rejected
	ApprovedBy      *string
	ApprovedByName  *string
	ApprovalNotes   *string
	ApprovalDate    *time.Time
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

type TimesheetStatus string

const (
	TimesheetStatusPending    TimesheetStatus = "pending"
	TimesheetStatusApproved   TimesheetStatus = "approved"
	TimesheetStatusOverridden TimesheetStatus = "overridden"
	TimesheetStatusRejected   TimesheetStatus = "rejected"
)

func (s TimesheetStatus) IsValid() bool {
	switch s {
	case TimesheetStatusPending, TimesheetStatusApproved, TimesheetStatusOverridden, TimesheetStatusRejected:
		return true
	}
	return false
}

// Payable reports whether hours in this status count toward pay.
func (s TimesheetStatus) Payable() bool {
	return s == TimesheetStatusApproved || s == TimesheetStatusOverridden
}

// AttendanceFilter is the criteria accepted by AttendanceRepository.Filter.
type AttendanceFilter struct {
	CompanyID   string
	EmployeeIDs []string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *TimesheetStatus
	Page        int
	Limit       int
}

// ApprovedHours sums approved_hours of payable records dated within
// [start, end]. Pending and rejected records contribute nothing.
func ApprovedHours(records []Attendance, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if !rec.TimesheetStatus.Payable() || rec.ApprovedHours == nil {
			continue
		}
		if !withinPeriod(rec.Date, start, end) {
			continue
		}
		total = total.Add(*rec.ApprovedHours)
	}
	return total
}

// RecordedHours sums total_hours of every record within [start, end].
func RecordedHours(records []Attendance, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if withinPeriod(rec.Date, start, end) {
			total = total.Add(rec.TotalHours)
		}
	}
	return total
}

// Pending returns records within [start, end] still awaiting a decision.
func Pending(records []Attendance, start, end time.Time) []Attendance {
	var pending []Attendance
	for _, rec := range records {
		if rec.TimesheetStatus == TimesheetStatusPending && withinPeriod(rec.Date, start, end) {
			pending = append(pending, rec)
		}
	}
	return pending
}

func withinPeriod(date, start, end time.Time) bool {
	d := truncateDay(date)
	return !d.Before(truncateDay(start)) && !d.After(truncateDay(end))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
