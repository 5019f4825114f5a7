package service

import (
	"context"
	"testing"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) error {
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	InitJWTWithSecret("test-secret")
	svc := NewAuthService(newFakeUserStore())
	ctx := context.Background()

	u, token, err := svc.Register(ctx, "Alice@Example.com", "hunter22", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "hunter22", u.PasswordHash)

	u2, token2, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.ID, u2.ID)
	assert.NotEmpty(t, token2)
}

func TestRegisterValidation(t *testing.T) {
	InitJWTWithSecret("test-secret")
	svc := NewAuthService(newFakeUserStore())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "not-an-email", "hunter22", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, err = svc.Register(ctx, "a@b.com", "short", "")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, _, err = svc.Register(ctx, "a@b.com", "hunter22", "")
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, "a@b.com", "hunter22", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	InitJWTWithSecret("test-secret")
	svc := NewAuthService(newFakeUserStore())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@b.com", "hunter22", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@b.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
