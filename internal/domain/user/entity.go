package user

import "time"

// Role is a member's role inside one organization
type Role string

const (
	RoleOwner   Role = "owner"   // Organization owner - full access
	RoleAdmin   Role = "admin"   // Manages settings and attendance data
	RoleManager Role = "manager" // Views reports, corrects attendance
	RoleMember  Role = "member"  // Regular member
)

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, empty when neither is set
func (u *User) FullName() string {
	var name string
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	return name
}

// IsManager checks if role can see organization-wide data
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleAdmin || r == RoleOwner
}
