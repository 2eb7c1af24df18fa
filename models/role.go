package models

import "fmt"

// Role is the closed set of access levels carried in auth tokens.
type Role string

// The four roles. Admin, user and viewer are staff accounts; client is an
// OTP-authenticated case party with no user record.
const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer, RoleClient:
		return true
	}
	return false
}

// Staff reports whether r is a staff account role
func (r Role) Staff() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}

// CanWriteCases reports whether r may create or update cases
func (r Role) CanWriteCases() bool {
	return r == RoleAdmin || r == RoleUser
}

// CanManageUsers reports whether r may register, delete or re-role accounts
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// ParseStaffRole validates a role string for account management endpoints.
// Client is deliberately rejected: it is never assignable to a user record.
func ParseStaffRole(s string) (Role, error) {
	r := Role(s)
	if !r.Staff() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}
