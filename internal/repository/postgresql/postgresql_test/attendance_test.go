//go:build integration

package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
)

type AttendanceRepositorySuite struct {
	suite.Suite
	setup     *TestDatabaseSetup
	repo      attendance.AttendanceRepository
	employees employee.EmployeeRepository
}

func TestAttendanceRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AttendanceRepositorySuite))
}

func (s *AttendanceRepositorySuite) SetupSuite() {
	setup, err := NewTestDatabase(context.Background())
	s.Require().NoError(err)
	s.setup = setup
	s.repo = postgresql.NewAttendanceRepository(setup.DB)
	s.employees = postgresql.NewEmployeeRepository(setup.DB)
}

func (s *AttendanceRepositorySuite) TearDownSuite() {
	if s.setup != nil {
		s.setup.Close(context.Background())
	}
}

func (s *AttendanceRepositorySuite) SetupTest() {
	s.Require().NoError(s.setup.TruncateAllTables(context.Background()))
}

func (s *AttendanceRepositorySuite) TestUpdateTimesheetBumpsVersion() {
	ctx := context.Background()
	rate := decimal.NewFromInt(20000)
	empID := seedEmployee(s.T(), s.setup.DB, "W-001", "wage", "hourly", nil, &rate)
	attID := seedAttendance(s.T(), s.setup.DB, empID, "2025-03-03", "8")

	att, err := s.repo.GetByID(ctx, attID, testCompanyID)
	s.Require().NoError(err)
	s.Equal(1, att.Version)
	s.Equal(attendance.TimesheetStatusPending, att.TimesheetStatus)
	s.Require().NotNil(att.EmployeeName)
	s.Equal("Employee W-001", *att.EmployeeName)

	hours := decimal.NewFromInt(6)
	approver := "manager-1"
	now := time.Now().UTC()
	att.TimesheetStatus = attendance.TimesheetStatusOverridden
	att.ApprovedHours = &hours
	att.ApprovedBy = &approver
	att.ApprovalDate = &now

	updated, err := s.repo.UpdateTimesheet(ctx, att, 1)
	s.Require().NoError(err)
	s.Equal(2, updated.Version)

	stored, err := s.repo.GetByID(ctx, attID, testCompanyID)
	s.Require().NoError(err)
	s.Equal(attendance.TimesheetStatusOverridden, stored.TimesheetStatus)
	s.Require().NotNil(stored.ApprovedHours)
	s.True(stored.ApprovedHours.Equal(hours))
	s.Equal(2, stored.Version)
}

func (s *AttendanceRepositorySuite) TestUpdateTimesheetStaleVersion() {
	ctx := context.Background()
	empID := seedEmployee(s.T(), s.setup.DB, "W-002", "wage", "hourly", nil, nil)
	attID := seedAttendance(s.T(), s.setup.DB, empID, "2025-03-04", "8")

	att, err := s.repo.GetByID(ctx, attID, testCompanyID)
	s.Require().NoError(err)

	hours := decimal.NewFromInt(8)
	att.TimesheetStatus = attendance.TimesheetStatusApproved
	att.ApprovedHours = &hours

	_, err = s.repo.UpdateTimesheet(ctx, att, 1)
	s.Require().NoError(err)

	// Second writer still holds version 1.
	_, err = s.repo.UpdateTimesheet(ctx, att, 1)
	s.ErrorIs(err, attendance.ErrVersionConflict)
}

func (s *AttendanceRepositorySuite) TestNotFound() {
	ctx := context.Background()

	_, err := s.repo.GetByID(ctx, "not-a-uuid", testCompanyID)
	s.ErrorIs(err, attendance.ErrAttendanceNotFound)

	_, err = s.repo.GetByID(ctx, "0193a5b0-0000-7000-8000-0000000000ff", testCompanyID)
	s.ErrorIs(err, attendance.ErrAttendanceNotFound)

	_, err = s.repo.UpdateTimesheet(ctx, attendance.Attendance{
		ID:              "0193a5b0-0000-7000-8000-0000000000ff",
		CompanyID:       testCompanyID,
		TimesheetStatus: attendance.TimesheetStatusRejected,
	}, 1)
	s.ErrorIs(err, attendance.ErrAttendanceNotFound)
}

func (s *AttendanceRepositorySuite) TestFilterByEmployeesAndPeriod() {
	ctx := context.Background()
	a := seedEmployee(s.T(), s.setup.DB, "W-010", "wage", "hourly", nil, nil)
	b := seedEmployee(s.T(), s.setup.DB, "W-011", "wage", "hourly", nil, nil)
	seedAttendance(s.T(), s.setup.DB, a, "2025-03-01", "8")
	seedAttendance(s.T(), s.setup.DB, a, "2025-03-31", "7.5")
	seedAttendance(s.T(), s.setup.DB, a, "2025-04-01", "8")
	seedAttendance(s.T(), s.setup.DB, b, "2025-03-15", "4")

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	records, total, err := s.repo.Filter(ctx, attendance.AttendanceFilter{
		CompanyID:   testCompanyID,
		EmployeeIDs: []string{a},
		StartDate:   &start,
		EndDate:     &end,
	})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Require().Len(records, 2)
	s.True(records[0].Date.Before(records[1].Date))

	emps, err := s.employees.Filter(ctx, employee.EmployeeFilter{CompanyID: testCompanyID, IDs: []string{b, "bogus"}})
	s.Require().NoError(err)
	s.Require().Len(emps, 1)
	s.Equal(employee.EmploymentTypeWage, emps[0].EmploymentType)
}
