package model

import (
	"time"

	"github.com/google/uuid"
)

// Claim statuses.
const (
	ClaimPending  = "pending"
	ClaimApproved = "approved"
	ClaimRejected = "rejected"
)

// Claim is a user's request to become the owner of an unclaimed listing.
// Claims are recorded pending and decided explicitly by an admin.
type Claim struct {
	ID         uuid.UUID  `json:"id"`
	BusinessID uuid.UUID  `json:"business_id"`
	UserID     uuid.UUID  `json:"user_id"`
	Status     string     `json:"status"`
	Note       *string    `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
}
