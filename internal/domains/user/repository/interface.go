package repository

import (
	"context"

	"github.com/google/uuid"

	"citylocal-backend/internal/domains/user/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]*model.User, int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SetRole(ctx context.Context, id uuid.UUID, role string) error

	// EnsureOwnerRole promotes a plain user to business_owner; accounts
	// already holding business_owner or admin are left untouched.
	EnsureOwnerRole(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int, error)
}
