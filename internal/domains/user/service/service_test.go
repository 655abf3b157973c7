package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activitymodel "citylocal-backend/internal/domains/activity/model"
	"citylocal-backend/internal/domains/user/model"
	"citylocal-backend/internal/shared"
	"citylocal-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return model.ErrEmailTaken
		}
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, page, limit int) ([]*model.User, int, error) {
	var out []*model.User
	for _, u := range f.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) EnsureOwnerRole(ctx context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	if u.Role == shared.RoleUser {
		u.Role = shared.RoleBusinessOwner
	}
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return len(f.users), nil
}

type stubRecorder struct {
	types []activitymodel.ActivityType
}

func (s *stubRecorder) Record(t activitymodel.ActivityType, description string, refs activitymodel.Refs, metadata map[string]interface{}) {
	s.types = append(s.types, t)
}

func newService(t *testing.T) (ServiceInterface, *fakeUserRepo, *stubRecorder) {
	t.Helper()
	repo := newFakeUserRepo()
	recorder := &stubRecorder{}
	svc := NewUserService(repo, jwt.NewManager("test-secret", 60), recorder)
	return svc, repo, recorder
}

func register(t *testing.T, svc ServiceInterface, email string) *model.AuthResponse {
	t.Helper()
	auth, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Jane Doe",
		Email:    email,
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	return auth
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, recorder := newService(t)

	auth := register(t, svc, "jane@example.com")

	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, shared.RoleUser, auth.User.Role)
	assert.Contains(t, recorder.types, activitymodel.TypeUserRegistered)

	// The issued token carries the user's identity.
	claims, err := jwt.NewManager("test-secret", 60).ValidateToken(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID.String(), claims.UserID)
	assert.Equal(t, shared.RoleUser, claims.Role)

	login, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestRegisterLowercasesEmail(t *testing.T) {
	svc, _, _ := newService(t)

	auth := register(t, svc, "  Jane@Example.COM ")
	assert.Equal(t, "jane@example.com", auth.User.Email)
}

func TestRegisterEmailTaken(t *testing.T) {
	svc, _, _ := newService(t)
	register(t, svc, "jane@example.com")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Other Jane",
		Email:    "jane@example.com",
		Password: "an0therpass",
	})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newService(t)

	for _, password := range []string{"short1", "allletters", "12345678"} {
		_, err := svc.Register(context.Background(), &model.RegisterRequest{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: password,
		})
		assert.Error(t, err, "password %q should be rejected", password)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newService(t)
	register(t, svc, "jane@example.com")

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "wr0ngpassword",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "d0esnotmatter",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestPasswordHashNeverStoredPlain(t *testing.T) {
	svc, repo, _ := newService(t)

	auth := register(t, svc, "jane@example.com")

	stored, err := repo.GetByID(context.Background(), auth.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}

func TestDeleteSelfBlocked(t *testing.T) {
	svc, _, _ := newService(t)
	auth := register(t, svc, "admin@example.com")

	actor := shared.Actor{ID: auth.User.ID, Role: shared.RoleAdmin}
	err := svc.Delete(context.Background(), actor, auth.User.ID)
	assert.ErrorIs(t, err, model.ErrSelfDelete)
}

func TestDeleteOtherUser(t *testing.T) {
	svc, repo, recorder := newService(t)
	auth := register(t, svc, "jane@example.com")

	actor := shared.Actor{ID: uuid.New(), Role: shared.RoleAdmin}
	err := svc.Delete(context.Background(), actor, auth.User.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), auth.User.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.Contains(t, recorder.types, activitymodel.TypeUserDeleted)
}

func TestSetRole(t *testing.T) {
	svc, _, _ := newService(t)
	auth := register(t, svc, "jane@example.com")
	actor := shared.Actor{ID: uuid.New(), Role: shared.RoleAdmin}

	updated, err := svc.SetRole(context.Background(), actor, auth.User.ID, shared.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, shared.RoleAdmin, updated.Role)

	_, err = svc.SetRole(context.Background(), actor, auth.User.ID, "superuser")
	assert.ErrorIs(t, err, model.ErrInvalidRole)
}

func TestEnsureOwnerRoleNeverDemotes(t *testing.T) {
	svc, repo, _ := newService(t)
	auth := register(t, svc, "jane@example.com")
	actor := shared.Actor{ID: uuid.New(), Role: shared.RoleAdmin}

	// Plain user gets promoted.
	require.NoError(t, svc.EnsureOwnerRole(context.Background(), auth.User.ID))
	promoted, err := repo.GetByID(context.Background(), auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.RoleBusinessOwner, promoted.Role)

	// Admins keep their role.
	elevated, err := svc.SetRole(context.Background(), actor, auth.User.ID, shared.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, svc.EnsureOwnerRole(context.Background(), elevated.ID))

	after, err := repo.GetByID(context.Background(), auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.RoleAdmin, after.Role)
}
