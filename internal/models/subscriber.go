package models

import (
	"time"
)

// SubscriberStatus is the canonical two-state newsletter vocabulary
type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// ValidSubscriberStatuses defines allowed subscriber statuses
var ValidSubscriberStatuses = map[SubscriberStatus]bool{
	SubscriberActive:       true,
	SubscriberUnsubscribed: true,
}

// Subscriber represents a newsletter subscription
type Subscriber struct {
	ID        string           `json:"id" db:"id"`
	Email     string           `json:"email" db:"email"`
	Name      string           `json:"name,omitempty" db:"name"`
	Status    SubscriberStatus `json:"status" db:"status"`
	Source    string           `json:"source,omitempty" db:"source"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// SubscriberFilter narrows a subscriber listing
type SubscriberFilter struct {
	Status *SubscriberStatus
	Limit  int
	Offset int
}

// SubscribeRequest is the newsletter signup payload
type SubscribeRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// DefaultSubscriberSource attributes signups that do not name a source
const DefaultSubscriberSource = "website"

// UnsubscribeRequest is the newsletter opt-out payload
type UnsubscribeRequest struct {
	Email string `json:"email"`
}
