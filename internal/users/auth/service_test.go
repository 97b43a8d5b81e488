// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/sec"
)

// # In-Memory Fakes

type memoryUserRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (repo *memoryUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	if user, ok := repo.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if user, ok := repo.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepo) Create(ctx context.Context, user *User) error {
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	repo.byID[user.ID] = user
	repo.byEmail[user.Email] = user
	return nil
}

type memorySessionRepo struct {
	sessions map[string]string
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]string)}
}

func (repo *memorySessionRepo) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	repo.sessions[tokenHash] = userID
	return nil
}

func (repo *memorySessionRepo) Find(ctx context.Context, tokenHash string) (string, error) {
	if userID, ok := repo.sessions[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Session")
}

func (repo *memorySessionRepo) Revoke(ctx context.Context, tokenHash string) error {
	delete(repo.sessions, tokenHash)
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryUserRepo, *memorySessionRepo) {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret-please-rotate", "quillhq.io")
	require.NoError(t, err)

	users := newMemoryUserRepo()
	sessions := newMemorySessionRepo()
	return NewService(users, sessions, tokens), users, sessions
}

func validRegistration() RegisterInput {
	return RegisterInput{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@example.com",
		Password:  "correct-horse-battery",
	}
}

// # Registration

func TestRegister_Success(t *testing.T) {
	service, _, _ := newTestService(t)

	user, err := service.Register(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.IsAdmin, "new accounts must never be administrators")
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash, "password must be hashed")
}

func TestRegister_DuplicateEmail_Conflict(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), validRegistration())
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.HTTPStatus)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing_first_name", func(in *RegisterInput) { in.FirstName = "" }},
		{"missing_last_name", func(in *RegisterInput) { in.LastName = "  " }},
		{"bad_email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short_password", func(in *RegisterInput) { in.Password = "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			input := validRegistration()
			tt.mutate(&input)

			_, err := service.Register(context.Background(), input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

// # Login

func TestLogin_Success(t *testing.T) {
	service, _, sessions := newTestService(t)

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	session, err := service.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Len(t, sessions.sessions, 1, "login must create exactly one refresh session")
}

func TestLogin_BadCredentials_GenericUnauthorized(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"unknown_email", LoginInput{Email: "ghost@example.com", Password: "correct-horse-battery"}},
		{"wrong_password", LoginInput{Email: "alice@example.com", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 401, ae.HTTPStatus)
			// Same message for both failure modes: no email enumeration.
			assert.Equal(t, "Invalid login credentials", ae.Message)
		})
	}
}

// # Refresh Rotation

func TestRefreshSession_RotatesToken(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	login, err := service.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshSession(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked during rotation; replaying it must fail.
	_, err = service.RefreshSession(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

func TestRefreshSession_UnknownToken_Unauthorized(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.RefreshSession(context.Background(), "never-issued")
	require.Error(t, err)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

// # Logout

func TestLogout_Idempotent(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	login, err := service.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), login.RefreshToken))

	// Second logout with the same (now revoked) token still succeeds.
	require.NoError(t, service.Logout(context.Background(), login.RefreshToken))

	// And the session is gone.
	_, err = service.RefreshSession(context.Background(), login.RefreshToken)
	require.Error(t, err)
}
