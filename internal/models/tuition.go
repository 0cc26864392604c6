package models

import "time"

// TuitionStatus is controlled by the backend; the gateway never changes it locally.
type TuitionStatus string

const (
	TuitionPending  TuitionStatus = "pending"
	TuitionApproved TuitionStatus = "approved"
	TuitionRejected TuitionStatus = "rejected"
)

// Tuition is a job post created by a student
type Tuition struct {
	ID           string        `json:"_id" validate:"required"`
	Slug         string        `json:"slug,omitempty"`
	Subject      string        `json:"subject" validate:"required"`
	Class        string        `json:"class"`
	Medium       string        `json:"medium"`
	Salary       float64       `json:"salary" validate:"gte=0"`
	Location     string        `json:"location"`
	Schedule     string        `json:"schedule"`
	Status       TuitionStatus `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	StudentEmail string        `json:"studentEmail" validate:"required"`
	StudentName  string        `json:"studentName,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// CreateTuitionRequest is the form a student submits
type CreateTuitionRequest struct {
	Subject  string  `json:"subject" binding:"required,max=100"`
	Class    string  `json:"class" binding:"required,max=50"`
	Medium   string  `json:"medium" binding:"required,max=50"`
	Salary   float64 `json:"salary" binding:"required,gt=0"`
	Location string  `json:"location" binding:"required,max=200"`
	Schedule string  `json:"schedule" binding:"required,max=200"`
}

// NewTuition is the backend payload for POST /api/tuitions/create
type NewTuition struct {
	CreateTuitionRequest
	StudentEmail string        `json:"studentEmail"`
	Status       TuitionStatus `json:"status"`
}

// TuitionCard is a listing as shown on the browse page
type TuitionCard struct {
	Tuition
	Applied bool `json:"applied"`
}

// TuitionDetail is the single-listing view
type TuitionDetail struct {
	Tuition        Tuition `json:"tuition"`
	AlreadyApplied bool    `json:"alreadyApplied"`
	CanApply       bool    `json:"canApply"`
}
