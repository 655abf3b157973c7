package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/business/model"
)

// SearchFilter is the store-level query produced from the UI filter
// parameters. All set filters are AND-combined.
type SearchFilter struct {
	Query      string
	CategoryID *uuid.UUID
	City       string
	State      string
	MinRating  *float64
	Featured   *bool

	// ActiveOnly constrains to published listings (all public callers).
	ActiveOnly bool
	// Status filters by moderation state for the admin queue; empty means
	// no status filter. Ignored when ActiveOnly is set.
	Status string

	Sort  string
	Page  int
	Limit int
}

type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Business, error)
	GetBySlug(ctx context.Context, slug string) (*model.Business, error)
	Update(ctx context.Context, business *model.Business) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Search runs the filter and returns the page plus the total match count.
	Search(ctx context.Context, filter SearchFilter) ([]*model.Business, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*model.Business, int, error)

	// Lifecycle writes. SetApproval owns the is_active/is_verified/
	// rejection columns; generic Update never touches them.
	SetApproval(ctx context.Context, id uuid.UUID, isActive, isVerified bool, rejectionReason *string, rejectedAt *time.Time) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	SetOwner(ctx context.Context, id, ownerID uuid.UUID, claimedAt time.Time) error

	// IncrementViews bumps the monotonic view counter by one.
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// UpdateRating writes the aggregate recomputed by the review domain.
	UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error

	// Lookup resolves the owner and publication state in one read; used by
	// the review domain without loading the whole record.
	Lookup(ctx context.Context, id uuid.UUID) (ownerID *uuid.UUID, isActive bool, err error)

	// ClearCategory detaches all businesses from a deleted category,
	// leaving them uncategorized. Returns the number of rows touched.
	ClearCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// CountByStatus returns totals for the admin dashboard.
	CountByStatus(ctx context.Context) (total, pending, active int, err error)
	ListRecent(ctx context.Context, limit int) ([]*model.Business, error)
}

type ClaimRepository interface {
	Create(ctx context.Context, claim *model.Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Claim, error)
	List(ctx context.Context, status string, page, limit int) ([]*model.Claim, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, note *string, decidedAt time.Time) error

	// RejectOtherPending closes competing pending claims once one claim on
	// the business has been approved.
	RejectOtherPending(ctx context.Context, businessID, approvedClaimID uuid.UUID, decidedAt time.Time) error
}
