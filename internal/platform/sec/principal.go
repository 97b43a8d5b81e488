// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package sec

// Principal is the authenticated identity resolved from a bearer credential.
//
// # Lifecycle
//
// A Principal is constructed fresh for every request by the identity
// resolution gate — the token's subject claim is looked up against the user
// store — and attached to the request context. It is never persisted, never
// shared across requests, and never mutated after construction.
type Principal struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}
