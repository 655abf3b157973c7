package model

import (
	"time"

	"github.com/google/uuid"
)

// Moderation states derived from the lifecycle flags.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
)

// DayHours is one weekday's opening hours.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// Business is a directory listing.
type Business struct {
	ID      uuid.UUID  `json:"id"`
	Slug    string     `json:"slug"`
	OwnerID *uuid.UUID `json:"owner_id"`

	Name        string     `json:"name"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`

	// Location
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Zip       string   `json:"zip"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Contact
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Website *string `json:"website,omitempty"`

	Hours map[string]DayHours `json:"hours,omitempty"`
	Tags  []string            `json:"tags"`

	// Media (plain URLs; upload handling lives outside this service)
	LogoURL   *string  `json:"logo_url,omitempty"`
	Images    []string `json:"images"`
	VideoURLs []string `json:"video_urls"`

	// Lifecycle & derived fields
	IsActive        bool       `json:"is_active"`
	IsVerified      bool       `json:"is_verified"`
	IsFeatured      bool       `json:"is_featured"`
	Views           int        `json:"views"`
	RatingAverage   float64    `json:"rating_average"`
	RatingCount     int        `json:"rating_count"`
	ClaimedAt       *time.Time `json:"claimed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status projects the lifecycle flags onto the moderation state machine.
func (b *Business) Status() string {
	switch {
	case b.IsActive:
		return StatusActive
	case b.RejectionReason != nil:
		return StatusRejected
	default:
		return StatusPending
	}
}
