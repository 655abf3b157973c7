package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBusiness removes every review of a business; used when the
	// business itself is deleted. Returns the number of rows removed.
	DeleteByBusiness(ctx context.Context, businessID uuid.UUID) (int64, error)

	// ListByBusiness returns the approved reviews of a business, newest
	// first, with reviewer names resolved.
	ListByBusiness(ctx context.Context, businessID uuid.UUID, page, limit int) ([]*model.Review, int, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Review, int, error)

	// AdminList filters the moderation queue: pending, approved, reported
	// or everything when the filter is empty.
	AdminList(ctx context.Context, filter string, page, limit int) ([]*model.Review, int, error)

	// ApprovedRatings returns the rating values of all approved reviews of
	// a business, the input to the aggregate recomputation.
	ApprovedRatings(ctx context.Context, businessID uuid.UUID) ([]int, error)

	SetModeration(ctx context.Context, id uuid.UUID, approved bool) error
	SetResponse(ctx context.Context, id uuid.UUID, text string, at time.Time) error
	SetReported(ctx context.Context, id uuid.UUID, reason string) error

	// ToggleHelpful flips the caller's helpful vote and returns the new
	// state plus the updated count.
	ToggleHelpful(ctx context.Context, reviewID, userID uuid.UUID) (marked bool, count int, err error)

	CountPending(ctx context.Context) (int, error)
	CountAll(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Review, error)
}
