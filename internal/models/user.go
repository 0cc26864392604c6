package models

import "time"

// UserStatus is toggled by admins through PUT /api/users/{id}/status
type UserStatus string

const (
	UserActive  UserStatus = "Active"
	UserBlocked UserStatus = "Blocked"
)

// Toggled returns the status an admin toggle moves to
func (s UserStatus) Toggled() UserStatus {
	if s == UserBlocked {
		return UserActive
	}
	return UserBlocked
}

// User is a marketplace account as seen by admins
type User struct {
	ID        string     `json:"_id" validate:"required"`
	Name      string     `json:"name"`
	Email     string     `json:"email" validate:"required"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status"`
	Photo     string     `json:"photo,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UserStatusRequest is the backend payload for the toggle endpoint
type UserStatusRequest struct {
	Status UserStatus `json:"status"`
}

// UserLog is one audit entry shown on the admin user-activity page
type UserLog struct {
	ID        string    `json:"_id" validate:"required"`
	Action    string    `json:"action" validate:"required"`
	Details   string    `json:"details,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the public profile page of a tutor or student
type Profile struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email"`
	Slug       string   `json:"slug"`
	Role       Role     `json:"role"`
	Photo      string   `json:"photo,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Location   string   `json:"location,omitempty"`
	Subjects   []string `json:"subjects,omitempty"`
	Education  string   `json:"education,omitempty"`
	Experience string   `json:"experience,omitempty"`
}
