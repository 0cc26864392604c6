package models

import "time"

// ApplicationStatus mirrors the backend's application lifecycle
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a tutor's interest in a tuition
type Application struct {
	ID             string            `json:"_id" validate:"required"`
	TuitionID      string            `json:"tuitionId" validate:"required"`
	TutorEmail     string            `json:"tutorEmail" validate:"required"`
	TutorName      string            `json:"tutorName,omitempty"`
	StudentEmail   string            `json:"studentEmail,omitempty"`
	Subject        string            `json:"subject,omitempty"`
	ExpectedSalary float64           `json:"expectedSalary"`
	Message        string            `json:"message,omitempty"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// ApplyRequest is the form a tutor submits
type ApplyRequest struct {
	ExpectedSalary float64 `json:"expectedSalary" binding:"required,gt=0"`
	Message        string  `json:"message" binding:"max=1000"`
}

// NewApplication is the backend payload for POST /api/applications/apply
type NewApplication struct {
	TuitionID      string  `json:"tuitionId"`
	TutorEmail     string  `json:"tutorEmail"`
	ExpectedSalary float64 `json:"expectedSalary"`
	Message        string  `json:"message,omitempty"`
}

// ApplicantGroup collects the applications a student received for one tuition
type ApplicantGroup struct {
	TuitionID    string        `json:"tuitionId"`
	Subject      string        `json:"subject"`
	Count        int           `json:"count"`
	Applications []Application `json:"applications"`
}
