package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

// IsAdmin reports whether the role carries administrative privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	CampusID     *string
	PictureURL   *string

	// TOTPSecret is the base32 seed used for password-reset OTPs.
	TOTPSecret *string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
