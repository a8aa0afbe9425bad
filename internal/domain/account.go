package domain

import "time"

// Role enumerates permission levels attached to an account.
type Role string

const (
	RoleEmployee      Role = "employee"
	RoleManager       Role = "manager"
	RoleSecurityAdmin Role = "security_admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleSecurityAdmin:
		return true
	}
	return false
}

// Account is the identity record behind every authenticated request.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
