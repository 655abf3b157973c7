package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType enumerates the audited actions.
type ActivityType string

const (
	TypeBusinessSubmitted      ActivityType = "business_submitted"
	TypeBusinessApproved       ActivityType = "business_approved"
	TypeBusinessRejected       ActivityType = "business_rejected"
	TypeBusinessResubmitted    ActivityType = "business_resubmitted"
	TypeBusinessFeatured       ActivityType = "business_featured"
	TypeBusinessDeleted        ActivityType = "business_deleted"
	TypeBusinessClaimRequested ActivityType = "business_claim_requested"
	TypeBusinessClaimed        ActivityType = "business_claimed"
	TypeReviewSubmitted        ActivityType = "review_submitted"
	TypeReviewApproved         ActivityType = "review_approved"
	TypeReviewDeleted          ActivityType = "review_deleted"
	TypeUserRegistered         ActivityType = "user_registered"
	TypeUserDeleted            ActivityType = "user_deleted"
	TypeCategoryCreated        ActivityType = "category_created"
	TypeCategoryUpdated        ActivityType = "category_updated"
	TypeCategoryDeleted        ActivityType = "category_deleted"
	TypeContactSubmitted       ActivityType = "contact_submitted"
)

// Refs are the optional entity references attached to an activity entry.
type Refs struct {
	UserID     *uuid.UUID
	BusinessID *uuid.UUID
	ReviewID   *uuid.UUID
	CategoryID *uuid.UUID
}

// Activity is one append-only audit-trail entry. Entries are never updated
// or deleted by normal flows.
type Activity struct {
	ID          uuid.UUID              `json:"id"`
	Type        ActivityType           `json:"type"`
	Description string                 `json:"description"`
	UserID      *uuid.UUID             `json:"user_id,omitempty"`
	BusinessID  *uuid.UUID             `json:"business_id,omitempty"`
	ReviewID    *uuid.UUID             `json:"review_id,omitempty"`
	CategoryID  *uuid.UUID             `json:"category_id,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`

	// Resolved for display; null when the referenced entity is gone.
	UserName     *string `json:"user_name,omitempty"`
	UserEmail    *string `json:"user_email,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
	CategoryName *string `json:"category_name,omitempty"`
}
