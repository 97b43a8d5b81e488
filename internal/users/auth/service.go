// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Authentication use cases: registration, login, token refresh, logout.
//
// # Review Process
//
// This service is critical for security. Any change to hashing, registration,
// or login logic must be reviewed before merge.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/sec"
	"github.com/quillhq/quill/internal/platform/validate"
	"github.com/quillhq/quill/pkg/uuid"
)

// TokenProvider defines the contract for minting access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT carrying the principal ID as
	// its subject.
	GenerateAccessToken(principalID string, timeToLive time.Duration) (string, error)
}

// Service implements account authentication use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
}

// NewService constructs the authentication [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register validates, hashes, and persists a brand-new account.
//
// # Returns
//   - The newly created [*User].
//   - [apperr.ValidationError] if the input fails any rule.
//   - [apperr.Conflict] if the email is already registered.
//
// # Business Rules
//   - Emails are unique.
//   - New accounts are never administrators; the flag is set out of band.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	v := &validate.Validator{}
	err := v.
		Required("firstName", input.FirstName).
		MaxLen("firstName", input.FirstName, 100).
		Required("lastName", input.LastName).
		MaxLen("lastName", input.LastName, 100).
		Required("email", input.Email).
		Email("email", input.Email).
		MinLen("password", input.Password, 8).
		MaxLen("password", input.Password, 72). // bcrypt input ceiling
		Err()
	if err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Check ───────────────────────────────────────────────

	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction ────────────────────────────────────────────

	user := &User{
		ID:           uuid.New(), // Time-sortable ID to prevent index fragmentation.
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		IsAdmin:      false,
	}

	// ── 5. Persistence ────────────────────────────────────────────────────

	// The unique index on email backstops the check above under concurrency;
	// dberr maps the violation to the same Conflict error.
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Login validates credentials and issues an access/refresh token pair.
//
// # Returns
//   - [*LoginSession] with both tokens and the account profile.
//   - [apperr.Unauthorized] if credentials do not match. The message never
//     reveals whether the email or the password was wrong.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Fetch Account ──────────────────────────────────────────────────

	user, err := service.users.FindByEmail(ctx, input.Email)
	if err != nil {
		// Generic message to prevent email enumeration.
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 2. Password Verification ──────────────────────────────────────────

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	return service.issueSession(ctx, user)
}

// RefreshSession implements refresh token rotation.
//
// The presented token is revoked before a new pair is issued, so a replayed
// refresh token fails on its second use.
func (service *Service) RefreshSession(ctx context.Context, refreshToken string) (*LoginSession, error) {
	// ── 1. Find Existing Session ──────────────────────────────────────────

	tokenHash := sec.HashToken(refreshToken)
	userID, err := service.sessions.Find(ctx, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// ── 2. Rotation (Revoke Old Session) ──────────────────────────────────

	if err := service.sessions.Revoke(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// ── 3. Fetch Account ──────────────────────────────────────────────────

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorized("User no longer exists")
	}

	// ── 4. Issue New Tokens ───────────────────────────────────────────────

	return service.issueSession(ctx, user)
}

// Logout revokes the presented refresh token.
//
// An unknown or already-revoked token still counts as a successful logout;
// the operation is idempotent.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return service.sessions.Revoke(ctx, sec.HashToken(refreshToken))
}

// issueSession mints an access token and a refresh session for the account.
func (service *Service) issueSession(ctx context.Context, user *User) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	if err := service.sessions.Save(ctx, sec.HashToken(refreshToken), user.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
