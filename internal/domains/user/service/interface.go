package service

import (
	"context"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/user/model"
	"citylocal-backend/internal/shared"
)

type ServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)

	// EnsureOwnerRole promotes a plain user to the business-owner role.
	// The business domain calls it on submission and approved claims.
	EnsureOwnerRole(ctx context.Context, userID uuid.UUID) error

	// Admin surface
	List(ctx context.Context, page, limit int) (*model.ListUsersResponse, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	SetRole(ctx context.Context, actor shared.Actor, id uuid.UUID, role string) (*model.User, error)
}
