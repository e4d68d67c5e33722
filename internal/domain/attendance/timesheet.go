package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxDailyHours bounds an overridden day.
var MaxDailyHours = decimal.NewFromInt(24)

// Action names a timesheet transition.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionOverride Action = "override"
	ActionReject   Action = "reject"
)

// allowedFrom lists the source states each action accepts. Approved and
// overridden days may be corrected again; rejected days are final.
var allowedFrom = map[Action][]TimesheetStatus{
	ActionApprove:  {TimesheetStatusPending, TimesheetStatusApproved, TimesheetStatusOverridden},
	ActionOverride: {TimesheetStatusPending, TimesheetStatusApproved, TimesheetStatusOverridden},
	ActionReject:   {TimesheetStatusPending},
}

// CanTransition reports whether action is permitted from status.
func CanTransition(status TimesheetStatus, action Action) bool {
	for _, s := range allowedFrom[action] {
		if s == status {
			return true
		}
	}
	return false
}

// Approve accepts the recorded hours verbatim.
func Approve(att Attendance, approver user.Approver, notes *string, now time.Time) (Attendance, error) {
	if err := guard(att, approver, ActionApprove); err != nil {
		return Attendance{}, err
	}
	hours := att.TotalHours
	att.ApprovedHours = &hours
	att.TimesheetStatus = TimesheetStatusApproved
	att.ApprovalNotes = trimmed(notes)
	stamp(&att, approver, now)
	return att, nil
}

// Override accepts caller-supplied hours in place of the recorded ones. Calling
// it again on an approved or overridden day replaces the previous decision.
func Override(att Attendance, approver user.Approver, hours decimal.Decimal, notes string, now time.Time) (Attendance, error) {
	if err := guard(att, approver, ActionOverride); err != nil {
		return Attendance{}, err
	}

	var errs validator.ValidationErrors
	if hours.IsNegative() {
		errs.Add("approved_hours", "must be non-negative")
	} else if hours.GreaterThan(MaxDailyHours) {
		errs.Add("approved_hours", fmt.Sprintf("must not exceed %s", MaxDailyHours))
	}
	if validator.IsEmpty(notes) {
		errs.Add("notes", "override reason is required")
	}
	if err := errs.Err(); err != nil {
		return Attendance{}, err
	}

	att.ApprovedHours = &hours
	att.TimesheetStatus = TimesheetStatusOverridden
	att.ApprovalNotes = trimmed(&notes)
	stamp(&att, approver, now)
	return att, nil
}

// Reject marks the day unpaid. approved_hours stays unset.
func Reject(att Attendance, approver user.Approver, reason string, now time.Time) (Attendance, error) {
	if err := guard(att, approver, ActionReject); err != nil {
		return Attendance{}, err
	}
	if validator.IsEmpty(reason) {
		return Attendance{}, validator.ValidationErrors{{Field: "reason", Message: "rejection reason is required"}}
	}

	att.ApprovedHours = nil
	att.TimesheetStatus = TimesheetStatusRejected
	att.ApprovalNotes = trimmed(&reason)
	stamp(&att, approver, now)
	return att, nil
}

func guard(att Attendance, approver user.Approver, action Action) error {
	if !approver.Valid() {
		return user.ErrApprovalCapabilityRequired
	}
	if att.CompanyID != approver.CompanyID() {
		return ErrCompanyMismatch
	}
	if !CanTransition(att.TimesheetStatus, action) {
		return fmt.Errorf("%w: cannot %s a %s timesheet", ErrInvalidTransition, action, att.TimesheetStatus)
	}
	return nil
}

func stamp(att *Attendance, approver user.Approver, now time.Time) {
	userID := approver.UserID()
	name := approver.Name()
	att.ApprovedBy = &userID
	att.ApprovedByName = &name
	att.ApprovalDate = &now
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
