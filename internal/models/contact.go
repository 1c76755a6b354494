package models

import (
	"time"
)

// ContactStatus tracks admin handling of a contact message
type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactArchived ContactStatus = "archived"
)

// ValidContactStatuses defines allowed contact message statuses
var ValidContactStatuses = map[ContactStatus]bool{
	ContactNew:      true,
	ContactRead:     true,
	ContactArchived: true,
}

// ContactMessage is a contact-form submission
type ContactMessage struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Email     string        `json:"email" db:"email"`
	Subject   string        `json:"subject,omitempty" db:"subject"`
	Message   string        `json:"message" db:"message"`
	Status    ContactStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// ContactFilter narrows a contact message listing
type ContactFilter struct {
	Status *ContactStatus
	Limit  int
	Offset int
}

// ContactRequest is the public contact form payload
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactStatusUpdate is the admin status update for a contact message
type ContactStatusUpdate struct {
	Status string `json:"status"`
}
