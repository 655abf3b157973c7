package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's rating of a business. A user can hold at most one
// review per business; new and edited reviews wait for moderation before
// they count toward the business rating.
type Review struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	UserID     uuid.UUID `json:"user_id"`

	// Content
	Rating  int      `json:"rating"` // 1-5
	Title   *string  `json:"title,omitempty"`
	Comment string   `json:"comment"`
	Images  []string `json:"images"`

	// Community signals
	HelpfulCount int `json:"helpful_count"`

	// Owner response
	ResponseText *string    `json:"response_text,omitempty"`
	ResponseAt   *time.Time `json:"response_at,omitempty"`

	// Moderation
	IsApproved   bool    `json:"is_approved"`
	IsReported   bool    `json:"is_reported"`
	ReportReason *string `json:"report_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Resolved for display on list endpoints.
	UserName     *string `json:"user_name,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
}
