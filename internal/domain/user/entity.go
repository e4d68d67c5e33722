package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can approve timesheets and run payroll
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// Actor is the authenticated caller as seen by services. It is built once at the
// edge (JWT claims) and passed explicitly; services never look it up themselves.
type Actor struct {
	UserID     string
	Name       string
	CompanyID  string
	EmployeeID *string
	Role       Role
}

// IsOwner checks if actor is company owner
func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}

// IsManager checks if actor is manager or owner
func (a Actor) IsManager() bool {
	return a.Role == RoleManager || a.Role == RoleOwner
}

// Can reports whether the actor's role carries permission.
func (a Actor) Can(permission Permission) bool {
	return HasPermission(a.Role, permission)
}
