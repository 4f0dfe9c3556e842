package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/auth"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByOAuth(_ context.Context, _, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, newUser user.User) (user.User, error) {
	f.byEmail[newUser.Email] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(_ context.Context, _, email string) (user.User, error) {
	return f.GetByEmail(context.Background(), email)
}

func hashPassword(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func TestLoginRejectsPendingAccount(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]user.User{
		"new.hire@acme.test": {
			ID:           "u-1",
			Email:        "new.hire@acme.test",
			PasswordHash: hashPassword(t, "s3cret-pass"),
			Role:         user.RolePending,
		},
	}}
	svc := NewAuthService(nil, repo, nil, nil, nil, nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "new.hire@acme.test",
		Password: "s3cret-pass",
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]user.User{}}
	svc := NewAuthService(nil, repo, nil, nil, nil, nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ghost@acme.test",
		Password: "whatever-pass",
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]user.User{
		"owner@acme.test": {
			ID:           "u-2",
			Email:        "owner@acme.test",
			PasswordHash: hashPassword(t, "correct-pass"),
			Role:         user.RoleOwner,
		},
	}}
	svc := NewAuthService(nil, repo, nil, nil, nil, nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "owner@acme.test",
		Password: "wrong-pass-1",
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
