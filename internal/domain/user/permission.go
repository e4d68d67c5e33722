package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Timesheet Management
	PermissionTimesheetViewOwn Permission = "timesheet.view_own"
	PermissionTimesheetViewAll Permission = "timesheet.view_all"
	PermissionTimesheetApprove Permission = "timesheet.approve"

	// Payroll
	PermissionPayrollView   Permission = "payroll.view"
	PermissionPayrollRun    Permission = "payroll.run"
	PermissionPayrollCommit Permission = "payroll.commit"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		// Owner has all permissions
		PermissionViewOwnProfile,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionTimesheetApprove,
		PermissionPayrollView,
		PermissionPayrollRun,
		PermissionPayrollCommit,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionTimesheetApprove,
		PermissionPayrollView,
		PermissionPayrollRun,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionTimesheetViewOwn,
	},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
