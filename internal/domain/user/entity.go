package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can approve leave requests
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

type User struct {
	ID              string
	CompanyID       *string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// IsOwner checks if the role is company owner
func (r Role) IsOwner() bool {
	return r == RoleOwner
}

// IsManager checks if the role is manager or owner
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}

// CanApprove checks if the role can approve requests
func (r Role) CanApprove() bool {
	return r.IsManager()
}

// CanLogin checks if the account has finished onboarding
func (r Role) CanLogin() bool {
	return r != RolePending
}
