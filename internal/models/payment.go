package models

import "time"

// PaymentStatus is the settlement state of a transaction
type PaymentStatus string

const (
	PaymentSuccess  PaymentStatus = "Success"
	PaymentPending  PaymentStatus = "Pending"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Payment is a read-only transaction record
type Payment struct {
	ID            string        `json:"_id" validate:"required"`
	TransactionID string        `json:"transactionId"`
	Amount        float64       `json:"amount" validate:"gte=0"`
	StudentEmail  string        `json:"studentEmail"`
	TutorEmail    string        `json:"tutorEmail"`
	TuitionID     string        `json:"tuitionId,omitempty"`
	Status        PaymentStatus `json:"status" validate:"omitempty,oneof=Success Pending Failed Refunded"`
	Date          time.Time     `json:"date"`
}

// MonthTotal is one bucket of a monthly chart
type MonthTotal struct {
	Month string  `json:"month"` // 2006-01
	Label string  `json:"label"` // Jan
	Total float64 `json:"total"`
}

// PaymentSummary is the payments / revenue page
type PaymentSummary struct {
	Total    float64      `json:"total"`
	Count    int          `json:"count"`
	Monthly  []MonthTotal `json:"monthly"`
	Payments []Payment    `json:"payments"`
}
