package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a directory account. Role starts as "user" and is promoted to
// "business_owner" when the account submits or successfully claims a
// listing; "admin" is assigned out of band.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
