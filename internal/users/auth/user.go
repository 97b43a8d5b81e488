// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Package auth implements the account and authentication domain.
//
// # Architecture
//
// The entity in this file represents the "Truth" of the accounts domain.
// It has no dependencies on outer layers (databases, HTTP, frameworks),
// which keeps the core logic testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/quillhq/quill/internal/platform/sec"
)

// User represents a registered account on the Quill platform.
//
// # Rules
//   - Email is unique and validated at registration.
//   - PasswordHash is produced by bcrypt exclusively via [Service.Register].
//   - IsAdmin is the single authorization flag: administrators see and manage
//     everything, regular members act only on their own content.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal projects the account into the request-scoped identity carried
// through the middleware chain.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
	}
}
