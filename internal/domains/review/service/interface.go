package service

import (
	"context"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/review/model"
	"citylocal-backend/internal/shared"
)

// BusinessGateway is the slice of the business domain the review service
// needs: existence/ownership checks and the aggregate write-back.
type BusinessGateway interface {
	Lookup(ctx context.Context, id uuid.UUID) (ownerID *uuid.UUID, isActive bool, err error)
	UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error
}

type ServiceInterface interface {
	Create(ctx context.Context, actor shared.Actor, req *model.CreateReviewRequest) (*model.Review, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error

	ListByBusiness(ctx context.Context, businessID uuid.UUID, page, limit int) (*model.BusinessReviewsResponse, error)
	ListMine(ctx context.Context, actor shared.Actor, page, limit int) (*model.BusinessReviewsResponse, error)

	Respond(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.RespondRequest) (*model.Review, error)
	ToggleHelpful(ctx context.Context, actor shared.Actor, id uuid.UUID) (*model.HelpfulResponse, error)
	Report(ctx context.Context, actor shared.Actor, id uuid.UUID, req *model.ReportRequest) error

	// Admin surface
	AdminList(ctx context.Context, filter string, page, limit int) (*model.BusinessReviewsResponse, error)
	Moderate(ctx context.Context, actor shared.Actor, id uuid.UUID, approve bool) (*model.Review, error)
}
