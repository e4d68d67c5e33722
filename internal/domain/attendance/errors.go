package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidTransition  = errors.New("timesheet transition not allowed from current status")
	ErrVersionConflict    = errors.New("attendance record was modified by someone else, reload and retry")
	ErrCompanyMismatch    = errors.New("attendance record belongs to another company")
)
