package user

import "errors"

var (
	ErrAdminPrivilegeRequired     = errors.New("admin privilege required")
	ErrApprovalCapabilityRequired = errors.New("timesheet approval capability required")
	ErrInsufficientPermissions    = errors.New("insufficient permissions")
	ErrCompanyIDRequired          = errors.New("company ID is required")
)

// IsAuthorizationError reports whether err is one of the authorization failures.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrAdminPrivilegeRequired) ||
		errors.Is(err, ErrApprovalCapabilityRequired) ||
		errors.Is(err, ErrInsufficientPermissions)
}
