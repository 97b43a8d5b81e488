// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface lives in a separate file from user.go so entity changes and
// storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	//
	// Returns [apperr.NotFound] if no account is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a brand-new account.
	//
	// Returns a wrapped Conflict error if the email unique constraint fails.
	Create(ctx context.Context, user *User) error
}

// SessionRepository defines the contract for refresh-token sessions.
//
// # Storage Model
//
// Sessions are volatile records keyed by the SHA-256 hash of the raw refresh
// token, mapping to the owning user ID. Expiry is enforced by the store's
// TTL, so no cleanup job is needed. The canonical implementation is Redis.
type SessionRepository interface {
	// Save stores a session for the hashed refresh token with the given TTL.
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error

	// Find returns the user ID owning the session, or [apperr.NotFound] if
	// the session is unknown, expired, or revoked.
	Find(ctx context.Context, tokenHash string) (string, error)

	// Revoke removes the session so the refresh token can never be used again.
	Revoke(ctx context.Context, tokenHash string) error
}
