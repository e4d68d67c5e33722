package attendance

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import "context"

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID to prevent cross-company data access.
type AttendanceRepository interface {
	// Filter returns records matching the criteria ordered by date, plus the
	// total count ignoring pagination. Limit 0 returns every match.
	Filter(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetByID retrieves attendance by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// UpdateTimesheet writes the approval fields of att if the stored version
	// still equals expectedVersion, and returns the record with its new version.
	UpdateTimesheet(ctx context.Context, att Attendance, expectedVersion int) (Attendance, error)
}
