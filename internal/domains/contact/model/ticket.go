package model

import (
	"time"

	"github.com/google/uuid"
)

// Ticket statuses. A ticket is "open" until it reaches resolved.
const (
	StatusNew        = "new"
	StatusRead       = "read"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// Ticket is one contact-form submission. Submissions are anonymous: no
// account is required and no user reference is stored.
type Ticket struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`

	Status    string  `json:"status"`
	AdminNote *string `json:"admin_note,omitempty"`

	// Transition timestamps, set once when the ticket first reaches the
	// corresponding status.
	RepliedAt  *time.Time `json:"replied_at,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is a known ticket status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusRead, StatusInProgress, StatusResolved:
		return true
	}
	return false
}
