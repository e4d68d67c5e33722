package user

// Approver is the capability required by every timesheet transition. The zero
// value grants nothing; the only way to obtain a usable one is GrantApproval.
type Approver struct {
	userID    string
	name      string
	companyID string
}

// GrantApproval issues an Approver for actor if its role carries
// PermissionTimesheetApprove.
func GrantApproval(actor Actor) (Approver, error) {
	if actor.UserID == "" || actor.CompanyID == "" {
		return Approver{}, ErrApprovalCapabilityRequired
	}
	if !actor.Can(PermissionTimesheetApprove) {
		return Approver{}, ErrAdminPrivilegeRequired
	}
	return Approver{userID: actor.UserID, name: actor.Name, companyID: actor.CompanyID}, nil
}

// Valid reports whether the capability was issued by GrantApproval.
func (a Approver) Valid() bool {
	return a.userID != "" && a.companyID != ""
}

func (a Approver) UserID() string    { return a.userID }
func (a Approver) Name() string      { return a.name }
func (a Approver) CompanyID() string { return a.companyID }
