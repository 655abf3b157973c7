package service

import (
	"context"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/category/model"
	"citylocal-backend/internal/shared"
)

// BusinessUnlinker detaches businesses from a category being deleted.
type BusinessUnlinker interface {
	ClearCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type ServiceInterface interface {
	// List returns the public category list with live business counts.
	// Served through the cache; includeInactive (admin view) bypasses it.
	List(ctx context.Context, includeInactive bool) (*model.ListCategoriesResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	Create(ctx context.Context, actor shared.Actor, req *model.CreateCategoryRequest) (*model.Category, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error

	// Invalidate drops the cached public list. Called by the business
	// domain whenever a mutation can change the per-category counts.
	Invalidate(ctx context.Context)
}
