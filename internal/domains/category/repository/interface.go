package repository

import (
	"context"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/category/model"
)

type CategoryRepository interface {
	// List returns categories with business counts aggregated live.
	// includeInactive widens both the category filter and the business
	// count to inactive records (admin view).
	List(ctx context.Context, includeInactive bool) ([]*model.Category, error)

	// GetByID gets one category, business count included.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// Exists reports whether the category id references a real category.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of categories (admin stats).
	Count(ctx context.Context) (int, error)
}
