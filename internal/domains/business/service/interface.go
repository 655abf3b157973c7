package service

import (
	"context"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/business/model"
	"citylocal-backend/internal/shared"
)

// CategoryGateway is the slice of the category domain this service needs.
type CategoryGateway interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ReviewStore removes a business's reviews when the business goes away.
type ReviewStore interface {
	DeleteByBusiness(ctx context.Context, businessID uuid.UUID) (int64, error)
}

// UserStore promotes claimants and submitters to the business-owner role.
// EnsureOwnerRole is a no-op for users already holding a higher role.
type UserStore interface {
	EnsureOwnerRole(ctx context.Context, userID uuid.UUID) error
}

// CategoryCache invalidates the cached category list whenever listing
// mutations can change the per-category business counts.
type CategoryCache interface {
	Invalidate(ctx context.Context)
}

type ServiceInterface interface {
	// Public surface
	Search(ctx context.Context, req *model.SearchBusinessesRequest) (*model.ListBusinessesResponse, error)
	Get(ctx context.Context, actor *shared.Actor, id uuid.UUID) (*model.BusinessResponse, error)
	GetBySlug(ctx context.Context, actor *shared.Actor, slug string) (*model.BusinessResponse, error)

	// Owner surface
	Submit(ctx context.Context, actor shared.Actor, req *model.CreateBusinessRequest) (*model.BusinessResponse, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.UpdateBusinessRequest) (*model.BusinessResponse, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Resubmit(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.ResubmitBusinessRequest) (*model.BusinessResponse, error)
	ListMine(ctx context.Context, actor shared.Actor, page, limit int) (*model.ListBusinessesResponse, error)
	Claim(ctx context.Context, actor shared.Actor, businessID uuid.UUID) (*model.Claim, error)

	// Admin surface
	AdminList(ctx context.Context, req *model.AdminListBusinessesRequest) (*model.ListBusinessesResponse, error)
	Approve(ctx context.Context, actor shared.Actor, id uuid.UUID) (*model.BusinessResponse, error)
	Reject(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.RejectBusinessRequest) (*model.BusinessResponse, error)
	ToggleFeatured(ctx context.Context, actor shared.Actor, id uuid.UUID) (*model.BusinessResponse, error)
	ListClaims(ctx context.Context, status string, page, limit int) ([]*model.Claim, int, error)
	ApproveClaim(ctx context.Context, actor shared.Actor, claimID uuid.UUID, req *model.DecideClaimRequest) (*model.Claim, error)
	RejectClaim(ctx context.Context, actor shared.Actor, claimID uuid.UUID, req *model.DecideClaimRequest) (*model.Claim, error)
}
