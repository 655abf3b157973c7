package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/activity/model"
	"citylocal-backend/internal/domains/activity/repository"
	"citylocal-backend/pkg/logger"
)

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ServiceInterface {
	return &activityService{repo: repo}
}

// Record appends asynchronously; the caller does not await the outcome.
func (s *activityService) Record(
	activityType model.ActivityType,
	description string,
	refs model.Refs,
	metadata map[string]interface{},
) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Info("activity record panicked", map[string]interface{}{
					"type":  string(activityType),
					"panic": r,
				})
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.record(ctx, activityType, description, refs, metadata)
	}()
}

// record is the synchronous core; failures are logged, never returned.
func (s *activityService) record(
	ctx context.Context,
	activityType model.ActivityType,
	description string,
	refs model.Refs,
	metadata map[string]interface{},
) {
	activity := &model.Activity{
		ID:          uuid.New(),
		Type:        activityType,
		Description: description,
		UserID:      refs.UserID,
		BusinessID:  refs.BusinessID,
		ReviewID:    refs.ReviewID,
		CategoryID:  refs.CategoryID,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Insert(ctx, activity); err != nil {
		logger.Warn("failed to record activity", err)
	}
}

func (s *activityService) List(ctx context.Context, page, limit int) ([]*model.Activity, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.repo.List(ctx, page, limit)
}
