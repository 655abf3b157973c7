package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	activitymodel "citylocal-backend/internal/domains/activity/model"
	activityservice "citylocal-backend/internal/domains/activity/service"
	"citylocal-backend/internal/domains/review/model"
	"citylocal-backend/internal/domains/review/repository"
	"citylocal-backend/internal/shared"
	"citylocal-backend/pkg/logger"
)

type reviewService struct {
	repo       repository.ReviewRepository
	businesses BusinessGateway
	activities activityservice.Recorder
}

func NewReviewService(
	repo repository.ReviewRepository,
	businesses BusinessGateway,
	activities activityservice.Recorder,
) ServiceInterface {
	return &reviewService{
		repo:       repo,
		businesses: businesses,
		activities: activities,
	}
}

// Create files a new review. The business must be published, the author must
// not own it, and one review per author per business is enforced. New
// reviews start unapproved and do not count toward the rating yet.
func (s *reviewService) Create(ctx context.Context, actor shared.Actor, req *model.CreateReviewRequest) (*model.Review, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ownerID, isActive, err := s.businesses.Lookup(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if !isActive {
		return nil, model.NewNotReviewableError()
	}
	if actor.Owns(ownerID) {
		return nil, model.NewOwnBusinessError()
	}

	now := time.Now()
	review := &model.Review{
		ID:         uuid.New(),
		BusinessID: req.BusinessID,
		UserID:     actor.ID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		Images:     req.Images,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	// No aggregate recompute here: a new review starts unapproved, so the
	// approved-ratings pool is unchanged until moderation flips it.

	s.activities.Record(
		activitymodel.TypeReviewSubmitted,
		fmt.Sprintf("Review submitted with rating %d", review.Rating),
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &review.BusinessID, ReviewID: &review.ID},
		nil,
	)

	return review, nil
}

// Update edits the author's review. Any edit resets approval, so the edited
// content goes back through moderation and drops out of the aggregate until
// approved again.
func (s *reviewService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != actor.ID {
		return nil, model.NewForbiddenError("edit this review")
	}

	wasApproved := review.IsApproved

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = req.Title
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.Images != nil {
		review.Images = req.Images
	}
	review.IsApproved = false

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	if wasApproved {
		s.recalculate(ctx, review.BusinessID)
	}

	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && review.UserID != actor.ID {
		return model.NewForbiddenError("delete this review")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if review.IsApproved {
		s.recalculate(ctx, review.BusinessID)
	}

	s.activities.Record(
		activitymodel.TypeReviewDeleted,
		"Review deleted",
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &review.BusinessID, ReviewID: &review.ID},
		nil,
	)

	return nil
}

func (s *reviewService) ListByBusiness(ctx context.Context, businessID uuid.UUID, page, limit int) (*model.BusinessReviewsResponse, error) {
	page, limit = clampPage(page, limit)

	reviews, total, err := s.repo.ListByBusiness(ctx, businessID, page, limit)
	if err != nil {
		return nil, err
	}

	return buildListResponse(reviews, total, page, limit), nil
}

func (s *reviewService) ListMine(ctx context.Context, actor shared.Actor, page, limit int) (*model.BusinessReviewsResponse, error) {
	page, limit = clampPage(page, limit)

	reviews, total, err := s.repo.ListByUser(ctx, actor.ID, page, limit)
	if err != nil {
		return nil, err
	}

	return buildListResponse(reviews, total, page, limit), nil
}

// Respond attaches the business owner's public reply.
func (s *reviewService) Respond(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.RespondRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		ownerID, _, err := s.businesses.Lookup(ctx, review.BusinessID)
		if err != nil {
			return nil, err
		}
		if !actor.Owns(ownerID) {
			return nil, model.NewForbiddenError("respond to this review")
		}
	}

	now := time.Now()
	if err := s.repo.SetResponse(ctx, id, req.Text, now); err != nil {
		return nil, err
	}
	review.ResponseText = &req.Text
	review.ResponseAt = &now

	return review, nil
}

func (s *reviewService) ToggleHelpful(ctx context.Context, actor shared.Actor, id uuid.UUID) (*model.HelpfulResponse, error) {
	marked, count, err := s.repo.ToggleHelpful(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	return &model.HelpfulResponse{Marked: marked, HelpfulCount: count}, nil
}

func (s *reviewService) Report(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.ReportRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.repo.SetReported(ctx, id, req.Reason)
}

// ============================================================================
// Admin surface
// ============================================================================

func (s *reviewService) AdminList(ctx context.Context, filter string, page, limit int) (*model.BusinessReviewsResponse, error) {
	page, limit = clampPage(page, limit)

	switch filter {
	case model.FilterPending, model.FilterApproved, model.FilterReported, "":
	default:
		filter = ""
	}

	reviews, total, err := s.repo.AdminList(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	return buildListResponse(reviews, total, page, limit), nil
}

// Moderate decides a review. Approval puts the rating into the business
// aggregate; withdrawal takes it back out.
func (s *reviewService) Moderate(ctx context.Context, actor shared.Actor, id uuid.UUID, approve bool) (*model.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetModeration(ctx, id, approve); err != nil {
		return nil, err
	}

	changed := review.IsApproved != approve
	review.IsApproved = approve
	review.IsReported = false
	review.ReportReason = nil

	if changed {
		s.recalculate(ctx, review.BusinessID)
	}

	if approve {
		s.activities.Record(
			activitymodel.TypeReviewApproved,
			fmt.Sprintf("Review approved with rating %d", review.Rating),
			activitymodel.Refs{UserID: &actor.ID, BusinessID: &review.BusinessID, ReviewID: &review.ID},
			nil,
		)
	}

	return review, nil
}

// ============================================================================
// Rating aggregate
// ============================================================================

// recalculate rebuilds the business rating from its approved reviews and
// writes it back. Best effort: a failed recomputation is logged and the
// triggering operation still succeeds; the next recomputation heals it.
func (s *reviewService) recalculate(ctx context.Context, businessID uuid.UUID) {
	average, count, err := s.computeAggregate(ctx, businessID)
	if err != nil {
		logger.Error("failed to recompute business rating", err)
		return
	}

	if err := s.businesses.UpdateRating(ctx, businessID, average, count); err != nil {
		logger.Error("failed to write business rating", err)
	}
}

// computeAggregate averages the approved ratings in decimal arithmetic and
// rounds to one decimal place. No approved reviews means a zero aggregate.
func (s *reviewService) computeAggregate(ctx context.Context, businessID uuid.UUID) (float64, int, error) {
	ratings, err := s.repo.ApprovedRatings(ctx, businessID)
	if err != nil {
		return 0, 0, err
	}

	if len(ratings) == 0 {
		return 0, 0, nil
	}

	sum := decimal.Zero
	for _, rating := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(rating)))
	}

	average := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1)

	return average.InexactFloat64(), len(ratings), nil
}

// ============================================================================
// Helpers
// ============================================================================

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > model.MaxPageSize {
		limit = model.DefaultPageSize
	}
	return page, limit
}

func buildListResponse(reviews []*model.Review, total, page, limit int) *model.BusinessReviewsResponse {
	if reviews == nil {
		reviews = []*model.Review{}
	}

	return &model.BusinessReviewsResponse{
		Reviews: reviews,
		Total:   total,
		Page:    page,
		Pages:   (total + limit - 1) / limit,
	}
}
