package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	activitymodel "citylocal-backend/internal/domains/activity/model"
	activityservice "citylocal-backend/internal/domains/activity/service"
	"citylocal-backend/internal/domains/category/model"
	"citylocal-backend/internal/domains/category/repository"
	"citylocal-backend/internal/shared"
	"citylocal-backend/internal/shared/utils"
	"citylocal-backend/pkg/cache"
	"citylocal-backend/pkg/logger"
)

const (
	categoryListCacheKey = "categories:public"
	categoryListCacheTTL = 10 * time.Minute
)

type categoryService struct {
	repo       repository.CategoryRepository
	businesses BusinessUnlinker
	cache      cache.Cache
	activities activityservice.Recorder
}

func NewCategoryService(
	repo repository.CategoryRepository,
	businesses BusinessUnlinker,
	cacheClient cache.Cache,
	activities activityservice.Recorder,
) ServiceInterface {
	return &categoryService{
		repo:       repo,
		businesses: businesses,
		cache:      cacheClient,
		activities: activities,
	}
}

// List serves the public category list from the cache when possible. The
// counts inside the cached payload are at most one TTL stale; every listing
// mutation also invalidates the key explicitly.
func (s *categoryService) List(ctx context.Context, includeInactive bool) (*model.ListCategoriesResponse, error) {
	if includeInactive {
		// Admin view is always fresh.
		return s.listFromStore(ctx, true)
	}

	if cached, err := s.cache.Get(ctx, categoryListCacheKey); err == nil {
		var resp model.ListCategoriesResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
		// A corrupt entry is dropped and rebuilt.
		s.Invalidate(ctx)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("category cache read failed", err)
	}

	resp, err := s.listFromStore(ctx, false)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, categoryListCacheKey, string(encoded), categoryListCacheTTL); err != nil {
			logger.Warn("category cache write failed", err)
		}
	}

	return resp, nil
}

func (s *categoryService) listFromStore(ctx context.Context, includeInactive bool) (*model.ListCategoriesResponse, error) {
	categories, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*model.Category{}
	}

	return &model.ListCategoriesResponse{Categories: categories}, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, actor shared.Actor, req *model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	category := &model.Category{
		ID:           uuid.New(),
		Name:         req.Name,
		Slug:         utils.GenerateSlug(req.Name),
		Icon:         req.Icon,
		IsActive:     isActive,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, model.ErrDuplicateName) {
			return nil, model.NewDuplicateNameError(req.Name)
		}
		return nil, err
	}

	s.Invalidate(ctx)
	s.activities.Record(
		activitymodel.TypeCategoryCreated,
		fmt.Sprintf("Category %q created", category.Name),
		activitymodel.Refs{UserID: &actor.ID, CategoryID: &category.ID},
		nil,
	)

	return category, nil
}

func (s *categoryService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.UpdateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		category.Name = *req.Name
		category.Slug = utils.GenerateSlug(*req.Name)
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, model.ErrDuplicateName) {
			return nil, model.NewDuplicateNameError(category.Name)
		}
		return nil, err
	}

	s.Invalidate(ctx)
	s.activities.Record(
		activitymodel.TypeCategoryUpdated,
		fmt.Sprintf("Category %q updated", category.Name),
		activitymodel.Refs{UserID: &actor.ID, CategoryID: &category.ID},
		nil,
	)

	return category, nil
}

// Delete removes a category. Businesses referencing it are detached first
// and stay in the directory uncategorized.
func (s *categoryService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	detached, err := s.businesses.ClearCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.Invalidate(ctx)
	s.activities.Record(
		activitymodel.TypeCategoryDeleted,
		fmt.Sprintf("Category %q deleted", category.Name),
		activitymodel.Refs{UserID: &actor.ID, CategoryID: &id},
		map[string]interface{}{"businesses_detached": detached},
	)

	return nil
}

func (s *categoryService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, categoryListCacheKey); err != nil {
		logger.Warn("category cache invalidation failed", err)
	}
}
