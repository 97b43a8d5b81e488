// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// PostgreSQL implementation of the account storage contract.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique violations) are mapped to
// domain-friendly [apperr.AppError] values via the dberr bridge so nothing
// about the storage engine leaks to callers.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/dberr"
	"github.com/quillhq/quill/internal/platform/sec"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates the PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new account into the users.account table.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, firstname, lastname, email, passwordhash, isadmin, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "user_create")
	}

	return nil
}

// FindByEmail retrieves an account by its unique email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, firstname, lastname, email, passwordhash, isadmin, createdat, updatedat
		FROM users.account
		WHERE email = $1`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, email), "user_find_by_email")
}

// FindByID retrieves an account by its unique ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, firstname, lastname, email, passwordhash, isadmin, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, id), "user_find_by_id")
}

// FindPrincipalByID resolves a token subject into a live principal.
//
// # Usage
//
// This satisfies the identity gate's PrincipalSource port: the gate calls it
// once per authenticated request, so role changes and account deletions take
// effect on the very next request.
func (repository *PostgresUserRepository) FindPrincipalByID(ctx context.Context, id string) (*sec.Principal, error) {
	const query = `
		SELECT id, firstname, lastname, email, isadmin
		FROM users.account
		WHERE id = $1`

	principal := &sec.Principal{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&principal.ID,
		&principal.FirstName,
		&principal.LastName,
		&principal.Email,
		&principal.IsAdmin,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("user_find_principal_failed: %w", err)
	}

	return principal, nil
}

// scanOne maps a single account row into a [*User].
func (repository *PostgresUserRepository) scanOne(row pgx.Row, action string) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("%s_failed: %w", action, err)
	}

	return user, nil
}
