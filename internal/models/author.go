package models

import (
	"time"
)

// Author represents an article author
type Author struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	AvatarURL string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed author roles
var ValidRoles = map[string]bool{
	"admin":  true,
	"editor": true,
	"writer": true,
}

// AuthorInput is the create request for an author
type AuthorInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role"`
}
