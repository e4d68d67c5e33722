package attendance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance/mocks"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type TimesheetServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *mocks.MockAttendanceRepository
	metrics  *metrics.Metrics
	service  *TimesheetServiceImpl
	approver user.Approver
	ctx      context.Context
	now      time.Time
}

func TestTimesheetServiceSuite(t *testing.T) {
	suite.Run(t, new(TimesheetServiceSuite))
}

func (s *TimesheetServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mocks.NewMockAttendanceRepository(s.ctrl)
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.service = NewTimesheetService(s.repo, s.metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = time.Date(2025, 3, 31, 17, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return s.now }
	s.ctx = context.Background()

	approver, err := user.GrantApproval(user.Actor{UserID: "user-mgr", Name: "Ibrahim Conteh", CompanyID: "company-1", Role: user.RoleManager})
	s.Require().NoError(err)
	s.approver = approver
}

func (s *TimesheetServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func record(status attendance.TimesheetStatus, version int) attendance.Attendance {
	return attendance.Attendance{
		ID:              "att-1",
		EmployeeID:      "emp-1",
		CompanyID:       "company-1",
		Date:            time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		TotalHours:      decimal.NewFromInt(8),
		TimesheetStatus: status,
		Version:         version,
	}
}

// bump mimics the repository incrementing the version on write.
func bump(_ context.Context, att attendance.Attendance, expected int) (attendance.Attendance, error) {
	att.Version = expected + 1
	return att, nil
}

func (s *TimesheetServiceSuite) TestApprove() {
	s.repo.EXPECT().GetByID(gomock.Any(), "att-1", "company-1").Return(record(attendance.TimesheetStatusPending, 1), nil)
	s.repo.EXPECT().UpdateTimesheet(gomock.Any(), gomock.Any(), 1).DoAndReturn(bump)

	resp, err := s.service.Approve(s.ctx, s.approver, attendance.ApproveTimesheetRequest{ID: "att-1", Version: 1})
	s.Require().NoError(err)

	s.Equal("approved", resp.TimesheetStatus)
	s.True(resp.ApprovedHours.Equal(decimal.NewFromInt(8)))
	s.Equal("user-mgr", *resp.ApprovedBy)
	s.Equal("Ibrahim Conteh", *resp.ApprovedByName)
	s.Equal("2025-03-31 17:00:00", *resp.ApprovalDate)
	s.Equal(2, resp.Version)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.TimesheetTransitions.WithLabelValues("approve", "ok")))
}

func (s *TimesheetServiceSuite) TestOverride() {
	s.Run("replaces hours", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), "att-1", "company-1").Return(record(attendance.TimesheetStatusPending, 3), nil)
		s.repo.EXPECT().
			UpdateTimesheet(gomock.Any(), gomock.Any(), 3).
			DoAndReturn(func(ctx context.Context, att attendance.Attendance, expected int) (attendance.Attendance, error) {
				s.Equal(attendance.TimesheetStatusOverridden, att.TimesheetStatus)
				s.Equal("left at 15:00", *att.ApprovalNotes)
				return bump(ctx, att, expected)
			})

		resp, err := s.service.Override(s.ctx, s.approver, attendance.OverrideTimesheetRequest{
			ID: "att-1", Version: 3, Hours: decimal.NewFromInt(6), Notes: "left at 15:00",
		})
		s.Require().NoError(err)
		s.Equal("overridden", resp.TimesheetStatus)
		s.True(resp.ApprovedHours.Equal(decimal.NewFromInt(6)))
	})

	s.Run("missing notes is a validation error and nothing is written", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), "att-1", "company-1").Return(record(attendance.TimesheetStatusPending, 1), nil)

		_, err := s.service.Override(s.ctx, s.approver, attendance.OverrideTimesheetRequest{
			ID: "att-1", Version: 1, Hours: decimal.NewFromInt(6),
		})
		var verrs validator.ValidationErrors
		s.Require().True(errors.As(err, &verrs))
		s.Contains(verrs.ToMap(), "notes")
	})
}

func (s *TimesheetServiceSuite) TestReject() {
	s.Run("pending can be rejected", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), "att-1", "company-1").Return(record(attendance.TimesheetStatusPending, 1), nil)
		s.repo.EXPECT().UpdateTimesheet(gomock.Any(), gomock.Any(), 1).DoAndReturn(bump)

		resp, err := s.service.Reject(s.ctx, s.approver, attendance.RejectTimesheetRequest{ID: "att-1", Version: 1, Reason: "no-show"})
		s.Require().NoError(err)
		s.Equal("rejected", resp.TimesheetStatus)
		s.Nil(resp.ApprovedHours)
	})

	s.Run("rejected is final", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), "att-1", "company-1").Return(record(attendance.TimesheetStatusRejected, 2), nil)

		_, err := s.service.Approve(s.ctx, s.approver, attendance.ApproveTimesheetRequest{ID: "att-1", Version: 2})
		s.ErrorIs(err, attendance.ErrInvalidTransition)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.TimesheetTransitions.WithLabelValues("approve", "invalid")))
	})
}

func (s *TimesheetServiceSuite) TestVersionConflict() {
	s.Run("stale version read by the caller", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), "att-1", "company-1").Return(record(attendance.TimesheetStatusApproved, 4), nil)

		_, err := s.service.Approve(s.ctx, s.approver, attendance.ApproveTimesheetRequest{ID: "att-1", Version: 3})
		s.ErrorIs(err, attendance.ErrVersionConflict)
	})

	s.Run("lost race at write time", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), "att-1", "company-1").Return(record(attendance.TimesheetStatusPending, 1), nil)
		s.repo.EXPECT().UpdateTimesheet(gomock.Any(), gomock.Any(), 1).Return(attendance.Attendance{}, attendance.ErrVersionConflict)

		_, err := s.service.Approve(s.ctx, s.approver, attendance.ApproveTimesheetRequest{ID: "att-1", Version: 1})
		s.ErrorIs(err, attendance.ErrVersionConflict)
		s.Equal(float64(2), testutil.ToFloat64(s.metrics.TimesheetTransitions.WithLabelValues("approve", "conflict")))
	})
}

func (s *TimesheetServiceSuite) TestCapabilityRequired() {
	_, err := s.service.Approve(s.ctx, user.Approver{}, attendance.ApproveTimesheetRequest{ID: "att-1", Version: 1})
	s.ErrorIs(err, user.ErrApprovalCapabilityRequired)
}

func (s *TimesheetServiceSuite) TestRequestValidation() {
	_, err := s.service.Reject(s.ctx, s.approver, attendance.RejectTimesheetRequest{})
	var verrs validator.ValidationErrors
	s.Require().True(errors.As(err, &verrs))
	s.Contains(verrs.ToMap(), "id")
	s.Contains(verrs.ToMap(), "version")
}

func (s *TimesheetServiceSuite) TestListTimesheets() {
	s.Run("employees are scoped to their own records", func() {
		employeeID := "emp-7"
		other := "emp-1"
		actor := user.Actor{UserID: "user-7", CompanyID: "company-1", EmployeeID: &employeeID, Role: user.RoleEmployee}

		s.repo.EXPECT().
			Filter(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
				s.Equal([]string{"emp-7"}, f.EmployeeIDs)
				s.Equal(1, f.Page)
				s.Equal(20, f.Limit)
				return nil, 0, nil
			})

		resp, err := s.service.ListTimesheets(s.ctx, actor, attendance.TimesheetFilter{EmployeeID: &other})
		s.Require().NoError(err)
		s.Empty(resp.Data)
	})

	s.Run("managers filter by status and dates", func() {
		status := "pending"
		start, end := "2025-03-01", "2025-03-31"
		actor := user.Actor{UserID: "user-mgr", CompanyID: "company-1", Role: user.RoleManager}

		s.repo.EXPECT().
			Filter(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
				s.Nil(f.EmployeeIDs)
				s.Equal(attendance.TimesheetStatusPending, *f.Status)
				s.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), *f.EndDate)
				return []attendance.Attendance{record(attendance.TimesheetStatusPending, 1)}, 1, nil
			})

		resp, err := s.service.ListTimesheets(s.ctx, actor, attendance.TimesheetFilter{Status: &status, StartDate: &start, EndDate: &end})
		s.Require().NoError(err)
		s.Equal(int64(1), resp.TotalCount)
		s.Equal("2025-03-03", resp.Data[0].Date)
	})
}

func (s *TimesheetServiceSuite) TestGetTimesheet() {
	s.Run("employee cannot read a colleague's day", func() {
		employeeID := "emp-7"
		actor := user.Actor{UserID: "user-7", CompanyID: "company-1", EmployeeID: &employeeID, Role: user.RoleEmployee}
		s.repo.EXPECT().GetByID(gomock.Any(), "att-1", "company-1").Return(record(attendance.TimesheetStatusPending, 1), nil)

		_, err := s.service.GetTimesheet(s.ctx, actor, "att-1")
		s.ErrorIs(err, user.ErrInsufficientPermissions)
	})

	s.Run("not found", func() {
		actor := user.Actor{UserID: "user-mgr", CompanyID: "company-1", Role: user.RoleManager}
		s.repo.EXPECT().GetByID(gomock.Any(), "missing", "company-1").Return(attendance.Attendance{}, attendance.ErrAttendanceNotFound)

		_, err := s.service.GetTimesheet(s.ctx, actor, "missing")
		s.ErrorIs(err, attendance.ErrAttendanceNotFound)
	})
}

func (s *TimesheetServiceSuite) TestForPeriod() {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	s.repo.EXPECT().
		Filter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
			s.Equal(0, f.Limit)
			s.Nil(f.Status)
			s.Equal([]string{"emp-1", "emp-2"}, f.EmployeeIDs)
			return []attendance.Attendance{record(attendance.TimesheetStatusApproved, 2)}, 1, nil
		})

	records, err := s.service.ForPeriod(s.ctx, "company-1", []string{"emp-1", "emp-2"}, start, end)
	s.Require().NoError(err)
	s.Len(records, 1)

	none, err := s.service.ForPeriod(s.ctx, "company-1", nil, start, end)
	s.NoError(err)
	s.Nil(none)
}
