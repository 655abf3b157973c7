package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	activitymodel "citylocal-backend/internal/domains/activity/model"
	activityservice "citylocal-backend/internal/domains/activity/service"
	"citylocal-backend/internal/domains/user/model"
	"citylocal-backend/internal/domains/user/repository"
	"citylocal-backend/internal/shared"
	"citylocal-backend/pkg/jwt"
)

type userService struct {
	repo       repository.UserRepository
	tokens     *jwt.Manager
	activities activityservice.Recorder
}

func NewUserService(
	repo repository.UserRepository,
	tokens *jwt.Manager,
	activities activityservice.Recorder,
) ServiceInterface {
	return &userService{
		repo:       repo,
		tokens:     tokens,
		activities: activities,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         shared.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, model.NewEmailTakenError()
		}
		return nil, err
	}

	s.activities.Record(
		activitymodel.TypeUserRegistered,
		fmt.Sprintf("User %q registered", user.Name),
		activitymodel.Refs{UserID: &user.ID},
		nil,
	)

	return s.buildAuthResponse(user)
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Same error for unknown email and wrong password.
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	return s.buildAuthResponse(user)
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) EnsureOwnerRole(ctx context.Context, userID uuid.UUID) error {
	return s.repo.EnsureOwnerRole(ctx, userID)
}

func (s *userService) List(ctx context.Context, page, limit int) (*model.ListUsersResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*model.User{}
	}

	return &model.ListUsersResponse{
		Users: users,
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// Delete removes an account. Admins cannot delete themselves; businesses
// owned by the account stay listed and return to the unclaimed pool.
func (s *userService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if actor.ID == id {
		return model.ErrSelfDelete
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(
		activitymodel.TypeUserDeleted,
		fmt.Sprintf("User %q deleted", user.Name),
		activitymodel.Refs{UserID: &actor.ID},
		map[string]interface{}{"deleted_user_id": id.String(), "deleted_email": user.Email},
	)

	return nil
}

func (s *userService) SetRole(ctx context.Context, actor shared.Actor, id uuid.UUID, role string) (*model.User, error) {
	switch role {
	case shared.RoleUser, shared.RoleBusinessOwner, shared.RoleAdmin:
	default:
		return nil, model.ErrInvalidRole
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return nil, err
	}
	user.Role = role

	return user, nil
}

func (s *userService) buildAuthResponse(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}
