// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Package middleware provides the HTTP middleware chain for the Quill API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/ctxutil"
	"github.com/quillhq/quill/internal/platform/respond"
	"github.com/quillhq/quill/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// PrincipalSource resolves a token subject into a live principal.
//
// The gate re-fetches the principal on every request instead of trusting
// claims embedded in the token, so deleted accounts and role changes take
// effect immediately. The user store satisfies this interface.
type PrincipalSource interface {
	FindPrincipalByID(ctx context.Context, id string) (*sec.Principal, error)
}

// Identity is the identity resolution gate.
//
// Both gate variants share one resolution path (verify token → look up
// principal → attach to context); they differ only in how the absence of a
// credential and resolution failures are reported.
type Identity struct {
	verifier   TokenVerifier
	principals PrincipalSource
}

// NewIdentity constructs the gate from its two dependencies.
func NewIdentity(verifier TokenVerifier, principals PrincipalSource) *Identity {
	return &Identity{verifier: verifier, principals: principals}
}

// Authenticate is the OPTIONAL identity gate.
//
// # Flow
//  1. No Authorization header → request proceeds anonymous. Not a failure.
//  2. Header present → extract bearer token, verify, resolve principal.
//  3. ANY failure with a header present → HTTP 400. Presenting an invalid
//     credential is treated more strictly than presenting none at all: a
//     caller attempting authentication with a bad token is rejected rather
//     than silently downgraded to anonymous.
//  4. Success → inject [*sec.Principal] into the request context.
func (gate *Identity) Authenticate(next http.Handler) http.Handler {
	return gate.resolveIdentity(false)(next)
}

// RequireAuth is the MANDATORY identity gate.
//
// # Flow
//  1. Missing header, malformed bearer, verification failure, or an unknown
//     principal → HTTP 401.
//  2. Success → inject [*sec.Principal] into the request context.
func (gate *Identity) RequireAuth(next http.Handler) http.Handler {
	return gate.resolveIdentity(true)(next)
}

// resolveIdentity is the single resolution function behind both gate
// variants, parameterized by whether a credential is required. Keeping one
// implementation prevents the optional and mandatory paths from drifting.
func (gate *Identity) resolveIdentity(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Absent Credential ──────────────────────────────────────────
			if authHeader == "" {
				if required {
					respond.Error(writer, request, apperr.Unauthorized("No authorization header was found"))
					return
				}
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				respond.Error(writer, request, gate.failure(required, "Bearer token not found"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := gate.verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, gate.failure(required, "Invalid or expired token"))
				return
			}

			// ── 4. Principal Resolution ───────────────────────────────────────
			// One repository round trip per request; no principal cache is kept.
			principal, err := gate.principals.FindPrincipalByID(request.Context(), claims.Subject)
			if err != nil || principal == nil {
				respond.Error(writer, request, gate.failure(required, "User from token does not exist"))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// failure maps a resolution failure to the gate's status class: 401 on the
// mandatory path, 400 on the optional path (a bad credential is a client
// error, not an authentication challenge).
func (gate *Identity) failure(required bool, message string) error {
	if required {
		return apperr.Unauthorized(message)
	}
	return apperr.ValidationError(message)
}

// RequireAdmin blocks requests whose principal is not an administrator.
//
// # Usage
//
// Must be registered in the router AFTER [Identity.RequireAuth]. It performs
// no token work itself; it only inspects the already-resolved principal.
//
// # Flow
//  1. Check that a [*sec.Principal] exists in context (implies AuthN).
//  2. If the principal is not an admin, abort with HTTP 403 Forbidden.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if principal == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !principal.IsAdmin {
			respond.Error(writer, request, apperr.Forbidden("Administrator access required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
