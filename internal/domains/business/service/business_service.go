package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	activitymodel "citylocal-backend/internal/domains/activity/model"
	activityservice "citylocal-backend/internal/domains/activity/service"
	"citylocal-backend/internal/domains/business/model"
	"citylocal-backend/internal/domains/business/repository"
	"citylocal-backend/internal/shared"
	"citylocal-backend/internal/shared/utils"
	"citylocal-backend/pkg/logger"
)

type businessService struct {
	repo       repository.BusinessRepository
	claims     repository.ClaimRepository
	categories CategoryGateway
	reviews    ReviewStore
	users      UserStore
	activities activityservice.Recorder
	catCache   CategoryCache
}

func NewBusinessService(
	repo repository.BusinessRepository,
	claims repository.ClaimRepository,
	categories CategoryGateway,
	reviews ReviewStore,
	users UserStore,
	activities activityservice.Recorder,
	catCache CategoryCache,
) ServiceInterface {
	return &businessService{
		repo:       repo,
		claims:     claims,
		categories: categories,
		reviews:    reviews,
		users:      users,
		activities: activities,
		catCache:   catCache,
	}
}

// ============================================================================
// Public surface
// ============================================================================

func (s *businessService) Search(ctx context.Context, req *model.SearchBusinessesRequest) (*model.ListBusinessesResponse, error) {
	req.Normalize()

	filter := repository.SearchFilter{
		Query:      req.Query,
		CategoryID: req.CategoryID,
		City:       req.City,
		State:      req.State,
		MinRating:  req.MinRating,
		Featured:   req.Featured,
		ActiveOnly: true,
		Sort:       req.Sort,
		Page:       req.Page,
		Limit:      req.Limit,
	}

	businesses, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return buildListResponse(businesses, total, req.Page, req.Limit), nil
}

// Get returns a listing by id. Non-active listings are visible only to the
// owner and admins; a successful public read of an active listing bumps the
// view counter.
func (s *businessService) Get(ctx context.Context, actor *shared.Actor, id uuid.UUID) (*model.BusinessResponse, error) {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.finishGet(ctx, actor, business)
}

func (s *businessService) GetBySlug(ctx context.Context, actor *shared.Actor, slug string) (*model.BusinessResponse, error) {
	business, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.finishGet(ctx, actor, business)
}

func (s *businessService) finishGet(ctx context.Context, actor *shared.Actor, business *model.Business) (*model.BusinessResponse, error) {
	if !business.IsActive {
		if actor == nil || (!actor.IsAdmin() && !actor.Owns(business.OwnerID)) {
			// Hide unpublished listings from the public.
			return nil, model.ErrBusinessNotFound
		}
		return model.NewBusinessResponse(business), nil
	}

	// View counting is best effort; a failed bump never fails the read.
	if err := s.repo.IncrementViews(ctx, business.ID); err != nil {
		logger.Warn("failed to increment views", err)
	} else {
		business.Views++
	}

	return model.NewBusinessResponse(business), nil
}

// ============================================================================
// Owner surface
// ============================================================================

// Submit creates a new listing. Regular users become the owner and enter
// moderation as pending; admin submissions publish immediately without an
// owner, covering directory entries seeded by staff.
func (s *businessService) Submit(ctx context.Context, actor shared.Actor, req *model.CreateBusinessRequest) (*model.BusinessResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	business := &model.Business{
		ID:          uuid.New(),
		Slug:        utils.TimestampedSlug(req.Name, now),
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Hours:       req.Hours,
		Tags:        req.Tags,
		LogoURL:     req.LogoURL,
		Images:      req.Images,
		VideoURLs:   req.VideoURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if actor.IsAdmin() {
		business.IsActive = true
		business.IsVerified = true
	} else {
		ownerID := actor.ID
		business.OwnerID = &ownerID
		claimedAt := now
		business.ClaimedAt = &claimedAt
	}

	if err := s.repo.Create(ctx, business); err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if err := s.users.EnsureOwnerRole(ctx, actor.ID); err != nil {
			logger.Warn("failed to promote submitter to business owner", err)
		}
	}

	s.activities.Record(
		activitymodel.TypeBusinessSubmitted,
		fmt.Sprintf("Business %q submitted", business.Name),
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &business.ID},
		nil,
	)
	if business.IsActive {
		s.catCache.Invalidate(ctx)
	}

	return model.NewBusinessResponse(business), nil
}

func (s *businessService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.UpdateBusinessRequest) (*model.BusinessResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !actor.Owns(business.OwnerID) {
		return nil, model.NewForbiddenError("update this business")
	}

	if req.CategoryID != nil && (business.CategoryID == nil || *req.CategoryID != *business.CategoryID) {
		if err := s.checkCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	applyPatch(business, req)

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, err
	}

	s.catCache.Invalidate(ctx)

	return model.NewBusinessResponse(business), nil
}

// Delete removes a listing along with its reviews.
func (s *businessService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && !actor.Owns(business.OwnerID) {
		return model.NewForbiddenError("delete this business")
	}

	// Reviews go first so no orphaned review can briefly resolve a dead
	// business. The FK cascade backstops a crash between the two deletes.
	removed, err := s.reviews.DeleteByBusiness(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(
		activitymodel.TypeBusinessDeleted,
		fmt.Sprintf("Business %q deleted", business.Name),
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &business.ID},
		map[string]interface{}{"reviews_removed": removed},
	)
	s.catCache.Invalidate(ctx)

	return nil
}

// Resubmit moves a rejected listing back into the moderation queue,
// optionally applying corrections in the same call.
func (s *businessService) Resubmit(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.ResubmitBusinessRequest) (*model.BusinessResponse, error) {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !actor.Owns(business.OwnerID) {
		return nil, model.NewForbiddenError("resubmit this business")
	}
	if business.Status() != model.StatusRejected {
		return nil, model.ErrNotRejected
	}

	if req != nil && req.Patch != nil {
		if err := req.Patch.Validate(); err != nil {
			return nil, err
		}
		if req.Patch.CategoryID != nil {
			if err := s.checkCategory(ctx, req.Patch.CategoryID); err != nil {
				return nil, err
			}
		}
		applyPatch(business, req.Patch)
		if err := s.repo.Update(ctx, business); err != nil {
			return nil, err
		}
	}

	// Back to pending: clear the rejection trail.
	if err := s.repo.SetApproval(ctx, id, false, false, nil, nil); err != nil {
		return nil, err
	}
	business.IsActive = false
	business.IsVerified = false
	business.RejectionReason = nil
	business.RejectedAt = nil

	s.activities.Record(
		activitymodel.TypeBusinessResubmitted,
		fmt.Sprintf("Business %q resubmitted for review", business.Name),
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &business.ID},
		nil,
	)

	return model.NewBusinessResponse(business), nil
}

func (s *businessService) ListMine(ctx context.Context, actor shared.Actor, page, limit int) (*model.ListBusinessesResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > model.MaxPageSize {
		limit = model.DefaultPageSize
	}

	businesses, total, err := s.repo.ListByOwner(ctx, actor.ID, page, limit)
	if err != nil {
		return nil, err
	}

	return buildListResponse(businesses, total, page, limit), nil
}

// Claim files an ownership claim on an unclaimed active listing. The claim
// stays pending until an admin decides it.
func (s *businessService) Claim(ctx context.Context, actor shared.Actor, businessID uuid.UUID) (*model.Claim, error) {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerID != nil {
		return nil, model.NewAlreadyClaimedError()
	}

	now := time.Now()
	claim := &model.Claim{
		ID:         uuid.New(),
		BusinessID: businessID,
		UserID:     actor.ID,
		Status:     model.ClaimPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}

	s.activities.Record(
		activitymodel.TypeBusinessClaimRequested,
		fmt.Sprintf("Ownership claim filed for %q", business.Name),
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &businessID},
		nil,
	)

	return claim, nil
}

// ============================================================================
// Admin surface
// ============================================================================

func (s *businessService) AdminList(ctx context.Context, req *model.AdminListBusinessesRequest) (*model.ListBusinessesResponse, error) {
	req.Normalize()

	filter := repository.SearchFilter{
		Query:  req.Query,
		Status: req.Status,
		Sort:   model.SortNewest,
		Page:   req.Page,
		Limit:  req.Limit,
	}

	businesses, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return buildListResponse(businesses, total, req.Page, req.Limit), nil
}

// Approve publishes a pending or rejected listing.
func (s *businessService) Approve(ctx context.Context, actor shared.Actor, id uuid.UUID) (*model.BusinessResponse, error) {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business.IsActive {
		return nil, model.ErrAlreadyActive
	}

	if err := s.repo.SetApproval(ctx, id, true, true, nil, nil); err != nil {
		return nil, err
	}
	business.IsActive = true
	business.IsVerified = true
	business.RejectionReason = nil
	business.RejectedAt = nil

	s.activities.Record(
		activitymodel.TypeBusinessApproved,
		fmt.Sprintf("Business %q approved", business.Name),
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &business.ID},
		nil,
	)
	s.catCache.Invalidate(ctx)

	return model.NewBusinessResponse(business), nil
}

// Reject takes a pending or active listing out of the directory with a
// reason the owner can read.
func (s *businessService) Reject(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.RejectBusinessRequest) (*model.BusinessResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business.Status() == model.StatusRejected {
		return nil, model.ErrAlreadyRejected
	}

	now := time.Now()
	if err := s.repo.SetApproval(ctx, id, false, false, &req.Reason, &now); err != nil {
		return nil, err
	}
	business.IsActive = false
	business.IsVerified = false
	business.RejectionReason = &req.Reason
	business.RejectedAt = &now

	s.activities.Record(
		activitymodel.TypeBusinessRejected,
		fmt.Sprintf("Business %q rejected", business.Name),
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &business.ID},
		map[string]interface{}{"reason": req.Reason},
	)
	s.catCache.Invalidate(ctx)

	return model.NewBusinessResponse(business), nil
}

// ToggleFeatured flips the featured flag and returns the new state.
func (s *businessService) ToggleFeatured(ctx context.Context, actor shared.Actor, id uuid.UUID) (*model.BusinessResponse, error) {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	featured := !business.IsFeatured
	if err := s.repo.SetFeatured(ctx, id, featured); err != nil {
		return nil, err
	}
	business.IsFeatured = featured

	s.activities.Record(
		activitymodel.TypeBusinessFeatured,
		fmt.Sprintf("Business %q featured set to %t", business.Name, featured),
		activitymodel.Refs{UserID: &actor.ID, BusinessID: &business.ID},
		map[string]interface{}{"featured": featured},
	)

	return model.NewBusinessResponse(business), nil
}

func (s *businessService) ListClaims(ctx context.Context, status string, page, limit int) ([]*model.Claim, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	switch status {
	case model.ClaimPending, model.ClaimApproved, model.ClaimRejected, "":
	default:
		status = ""
	}

	return s.claims.List(ctx, status, page, limit)
}

// ApproveClaim hands the business to the claimant, promotes them to the
// business-owner role and closes every competing pending claim.
func (s *businessService) ApproveClaim(ctx context.Context, actor shared.Actor, claimID uuid.UUID, req *model.DecideClaimRequest) (*model.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != model.ClaimPending {
		return nil, model.ErrClaimDecided
	}

	now := time.Now()
	if err := s.repo.SetOwner(ctx, claim.BusinessID, claim.UserID, now); err != nil {
		return nil, err
	}

	var note *string
	if req != nil {
		note = req.Note
	}
	if err := s.claims.UpdateStatus(ctx, claimID, model.ClaimApproved, note, now); err != nil {
		return nil, err
	}
	if err := s.claims.RejectOtherPending(ctx, claim.BusinessID, claimID, now); err != nil {
		logger.Warn("failed to close competing claims", err)
	}

	if err := s.users.EnsureOwnerRole(ctx, claim.UserID); err != nil {
		logger.Warn("failed to promote claimant to business owner", err)
	}

	claim.Status = model.ClaimApproved
	claim.Note = note
	claim.DecidedAt = &now
	claim.UpdatedAt = now

	s.activities.Record(
		activitymodel.TypeBusinessClaimed,
		"Ownership claim approved",
		activitymodel.Refs{UserID: &claim.UserID, BusinessID: &claim.BusinessID},
		map[string]interface{}{"decided_by": actor.ID.String()},
	)

	return claim, nil
}

func (s *businessService) RejectClaim(ctx context.Context, actor shared.Actor, claimID uuid.UUID, req *model.DecideClaimRequest) (*model.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != model.ClaimPending {
		return nil, model.ErrClaimDecided
	}

	now := time.Now()
	var note *string
	if req != nil {
		note = req.Note
	}
	if err := s.claims.UpdateStatus(ctx, claimID, model.ClaimRejected, note, now); err != nil {
		return nil, err
	}

	claim.Status = model.ClaimRejected
	claim.Note = note
	claim.DecidedAt = &now
	claim.UpdatedAt = now

	return claim, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *businessService) checkCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	exists, err := s.categories.Exists(ctx, *categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewCategoryNotFoundError()
	}
	return nil
}

// applyPatch copies the set fields of a patch onto the entity. Nil means
// "leave unchanged"; slices and the hours map replace wholesale when present.
func applyPatch(b *model.Business, req *model.UpdateBusinessRequest) {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.CategoryID != nil {
		b.CategoryID = req.CategoryID
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.City != nil {
		b.City = *req.City
	}
	if req.State != nil {
		b.State = *req.State
	}
	if req.Zip != nil {
		b.Zip = *req.Zip
	}
	if req.Country != nil {
		b.Country = *req.Country
	}
	if req.Latitude != nil {
		b.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		b.Longitude = req.Longitude
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.Email != nil {
		b.Email = req.Email
	}
	if req.Website != nil {
		b.Website = req.Website
	}
	if req.Hours != nil {
		b.Hours = req.Hours
	}
	if req.Tags != nil {
		b.Tags = req.Tags
	}
	if req.LogoURL != nil {
		b.LogoURL = req.LogoURL
	}
	if req.Images != nil {
		b.Images = req.Images
	}
	if req.VideoURLs != nil {
		b.VideoURLs = req.VideoURLs
	}
}

func buildListResponse(businesses []*model.Business, total, page, limit int) *model.ListBusinessesResponse {
	items := make([]*model.BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		items = append(items, model.NewBusinessResponse(b))
	}

	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	return &model.ListBusinessesResponse{
		Businesses: items,
		Total:      total,
		Page:       page,
		Pages:      pages,
	}
}
