package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 31, 17, 0, 0, 0, time.UTC)

func testApprover(t *testing.T) user.Approver {
	t.Helper()
	approver, err := user.GrantApproval(user.Actor{UserID: "admin-1", Name: "Fatmata Kamara", CompanyID: "company-1", Role: user.RoleOwner})
	require.NoError(t, err)
	return approver
}

func pendingDay(hours string) Attendance {
	return Attendance{
		ID:              "att-1",
		EmployeeID:      "emp-1",
		CompanyID:       "company-1",
		Date:            time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		TotalHours:      decimal.RequireFromString(hours),
		TimesheetStatus: TimesheetStatusPending,
		Version:         1,
	}
}

func TestApprove_UsesRecordedHours(t *testing.T) {
	notes := "  looks right "
	got, err := Approve(pendingDay("8"), testApprover(t), &notes, now)
	require.NoError(t, err)

	assert.Equal(t, TimesheetStatusApproved, got.TimesheetStatus)
	require.NotNil(t, got.ApprovedHours)
	assert.True(t, got.ApprovedHours.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, "admin-1", *got.ApprovedBy)
	assert.Equal(t, "Fatmata Kamara", *got.ApprovedByName)
	assert.Equal(t, now, *got.ApprovalDate)
	assert.Equal(t, "looks right", *got.ApprovalNotes)
}

func TestOverride_UsesCallerHours(t *testing.T) {
	got, err := Override(pendingDay("8"), testApprover(t), decimal.NewFromInt(6), "left early", now)
	require.NoError(t, err)

	assert.Equal(t, TimesheetStatusOverridden, got.TimesheetStatus)
	assert.True(t, got.ApprovedHours.Equal(decimal.NewFromInt(6)))
	assert.True(t, got.TotalHours.Equal(decimal.NewFromInt(8)), "recorded hours are kept")
}

func TestOverride_CorrectsApprovedDay(t *testing.T) {
	approver := testApprover(t)
	approved, err := Approve(pendingDay("8"), approver, nil, now)
	require.NoError(t, err)

	corrected, err := Override(approved, approver, decimal.NewFromInt(7), "correction", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, TimesheetStatusOverridden, corrected.TimesheetStatus)
	assert.True(t, corrected.ApprovedHours.Equal(decimal.NewFromInt(7)))

	again, err := Override(corrected, approver, decimal.NewFromInt(5), "second correction", now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, again.ApprovedHours.Equal(decimal.NewFromInt(5)), "latest caller wins")
}

func TestOverride_Validation(t *testing.T) {
	approver := testApprover(t)
	cases := []struct {
		name  string
		hours decimal.Decimal
		notes string
		field string
	}{
		{"negative hours", decimal.NewFromInt(-1), "x", "approved_hours"},
		{"more than a day", decimal.NewFromInt(25), "x", "approved_hours"},
		{"missing notes", decimal.NewFromInt(4), "  ", "notes"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Override(pendingDay("8"), approver, c.hours, c.notes, now)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), c.field)
		})
	}
}

func TestReject_ClearsHoursAndRequiresReason(t *testing.T) {
	approver := testApprover(t)

	_, err := Reject(pendingDay("8"), approver, "", now)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	got, err := Reject(pendingDay("8"), approver, "no-show", now)
	require.NoError(t, err)
	assert.Equal(t, TimesheetStatusRejected, got.TimesheetStatus)
	assert.Nil(t, got.ApprovedHours)
	assert.Equal(t, "no-show", *got.ApprovalNotes)
	assert.NotNil(t, got.ApprovalDate)
}

func TestTransitions_RejectedIsFinal(t *testing.T) {
	approver := testApprover(t)
	rejected, err := Reject(pendingDay("8"), approver, "no-show", now)
	require.NoError(t, err)

	_, err = Approve(rejected, approver, nil, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = Override(rejected, approver, decimal.NewFromInt(2), "x", now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = Reject(rejected, approver, "again", now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReject_NotFromApproved(t *testing.T) {
	approver := testApprover(t)
	approved, err := Approve(pendingDay("8"), approver, nil, now)
	require.NoError(t, err)

	_, err = Reject(approved, approver, "changed my mind", now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitions_RequireCapability(t *testing.T) {
	var none user.Approver
	_, err := Approve(pendingDay("8"), none, nil, now)
	assert.ErrorIs(t, err, user.ErrApprovalCapabilityRequired)
	_, err = Override(pendingDay("8"), none, decimal.NewFromInt(1), "x", now)
	assert.ErrorIs(t, err, user.ErrApprovalCapabilityRequired)
	_, err = Reject(pendingDay("8"), none, "x", now)
	assert.ErrorIs(t, err, user.ErrApprovalCapabilityRequired)
}

func TestTransitions_OtherCompany(t *testing.T) {
	day := pendingDay("8")
	day.CompanyID = "company-2"
	_, err := Approve(day, testApprover(t), nil, now)
	assert.ErrorIs(t, err, ErrCompanyMismatch)
}

func TestApprovedHours_Gating(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	six := decimal.NewFromInt(6)
	eight := decimal.NewFromInt(8)
	records := []Attendance{
		{Date: start, TotalHours: eight, TimesheetStatus: TimesheetStatusPending},
		{Date: start.AddDate(0, 0, 1), TotalHours: eight, TimesheetStatus: TimesheetStatusOverridden, ApprovedHours: &six},
		{Date: start.AddDate(0, 0, 2), TotalHours: eight, TimesheetStatus: TimesheetStatusApproved, ApprovedHours: &eight},
		{Date: start.AddDate(0, 0, 3), TotalHours: eight, TimesheetStatus: TimesheetStatusRejected},
		{Date: end.AddDate(0, 0, 1), TotalHours: eight, TimesheetStatus: TimesheetStatusApproved, ApprovedHours: &eight},
	}

	assert.True(t, ApprovedHours(records, start, end).Equal(decimal.NewFromInt(14)))
	assert.True(t, RecordedHours(records, start, end).Equal(decimal.NewFromInt(32)))
	assert.Len(t, Pending(records, start, end), 1)
}

func TestApprovedHours_PendingIgnoredRegardlessOfTotal(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []Attendance{{Date: day, TotalHours: decimal.NewFromInt(12), TimesheetStatus: TimesheetStatusPending}}
	assert.True(t, ApprovedHours(records, day, day).IsZero())
}
