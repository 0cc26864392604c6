package models

// Role is the marketplace role attached to a session and a user record.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTutor   Role = "tutor"
	RoleStudent Role = "student"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTutor, RoleStudent:
		return true
	default:
		return false
	}
}
