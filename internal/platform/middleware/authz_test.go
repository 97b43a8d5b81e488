// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/internal/platform/ctxutil"
	"github.com/quillhq/quill/internal/platform/middleware"
	"github.com/quillhq/quill/internal/platform/sec"
)

// # Test Doubles

type fakeVerifier struct {
	subject string
	err     error
}

func (f *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: f.subject},
	}, nil
}

type fakePrincipals struct {
	principal *sec.Principal
	err       error
}

func (f *fakePrincipals) FindPrincipalByID(ctx context.Context, id string) (*sec.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.principal, nil
}

// probeHandler records whether the request reached the final handler and
// what principal (if any) was in the context when it arrived.
type probeHandler struct {
	called    bool
	principal *sec.Principal
}

func (p *probeHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	p.called = true
	p.principal = ctxutil.GetPrincipal(request.Context())
	writer.WriteHeader(http.StatusOK)
}

func member() *sec.Principal {
	return &sec.Principal{
		ID:        "019536b2-5f2a-7000-8000-000000000001",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@example.com",
		IsAdmin:   false,
	}
}

func admin() *sec.Principal {
	p := member()
	p.IsAdmin = true
	return p
}

func doRequest(t *testing.T, handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, "/posts", nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

// # Optional Gate

func TestAuthenticate_NoHeader_ProceedsAnonymous(t *testing.T) {
	gate := middleware.NewIdentity(&fakeVerifier{}, &fakePrincipals{})
	probe := &probeHandler{}

	recorder := doRequest(t, gate.Authenticate(probe), "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, probe.called)
	assert.Nil(t, probe.principal, "anonymous request must carry no principal")
}

func TestAuthenticate_ValidToken_InjectsPrincipal(t *testing.T) {
	principal := member()
	gate := middleware.NewIdentity(
		&fakeVerifier{subject: principal.ID},
		&fakePrincipals{principal: principal},
	)
	probe := &probeHandler{}

	recorder := doRequest(t, gate.Authenticate(probe), "Bearer good-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, probe.called)
	require.NotNil(t, probe.principal)
	assert.Equal(t, principal.ID, probe.principal.ID)
}

// A present-but-broken credential is a client error on the optional path,
// never a silent downgrade to anonymous.
func TestAuthenticate_BadCredential_Returns400(t *testing.T) {
	tests := []struct {
		name       string
		verifier   *fakeVerifier
		principals *fakePrincipals
		header     string
	}{
		{
			name:       "malformed_bearer",
			verifier:   &fakeVerifier{subject: "u1"},
			principals: &fakePrincipals{principal: member()},
			header:     "Bearer",
		},
		{
			name:       "wrong_scheme",
			verifier:   &fakeVerifier{subject: "u1"},
			principals: &fakePrincipals{principal: member()},
			header:     "Basic dXNlcjpwYXNz",
		},
		{
			name:       "invalid_token",
			verifier:   &fakeVerifier{err: errors.New("sec: invalid token")},
			principals: &fakePrincipals{principal: member()},
			header:     "Bearer tampered",
		},
		{
			name:       "expired_token",
			verifier:   &fakeVerifier{err: errors.New("sec: token expired")},
			principals: &fakePrincipals{principal: member()},
			header:     "Bearer expired",
		},
		{
			name:       "unknown_principal",
			verifier:   &fakeVerifier{subject: "ghost"},
			principals: &fakePrincipals{err: errors.New("no rows")},
			header:     "Bearer orphaned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := middleware.NewIdentity(tt.verifier, tt.principals)
			probe := &probeHandler{}

			recorder := doRequest(t, gate.Authenticate(probe), tt.header)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.False(t, probe.called, "request must not reach the handler")

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
		})
	}
}

// # Mandatory Gate

func TestRequireAuth_Failures_Return401(t *testing.T) {
	tests := []struct {
		name       string
		verifier   *fakeVerifier
		principals *fakePrincipals
		header     string
	}{
		{
			name:       "missing_header",
			verifier:   &fakeVerifier{subject: "u1"},
			principals: &fakePrincipals{principal: member()},
			header:     "",
		},
		{
			name:       "malformed_bearer",
			verifier:   &fakeVerifier{subject: "u1"},
			principals: &fakePrincipals{principal: member()},
			header:     "NotBearer token",
		},
		{
			name:       "invalid_token",
			verifier:   &fakeVerifier{err: errors.New("sec: invalid token")},
			principals: &fakePrincipals{principal: member()},
			header:     "Bearer broken",
		},
		{
			name:       "unknown_principal",
			verifier:   &fakeVerifier{subject: "ghost"},
			principals: &fakePrincipals{err: errors.New("no rows")},
			header:     "Bearer orphaned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := middleware.NewIdentity(tt.verifier, tt.principals)
			probe := &probeHandler{}

			recorder := doRequest(t, gate.RequireAuth(probe), tt.header)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, probe.called)
		})
	}
}

func TestRequireAuth_ValidToken_InjectsPrincipal(t *testing.T) {
	principal := admin()
	gate := middleware.NewIdentity(
		&fakeVerifier{subject: principal.ID},
		&fakePrincipals{principal: principal},
	)
	probe := &probeHandler{}

	recorder := doRequest(t, gate.RequireAuth(probe), "Bearer good-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, probe.principal)
	assert.True(t, probe.principal.IsAdmin)
}

// # Admin Gate

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
		wantCalled bool
	}{
		{"no_principal", nil, http.StatusUnauthorized, false},
		{"member_forbidden", member(), http.StatusForbidden, false},
		{"admin_allowed", admin(), http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := &probeHandler{}
			handler := middleware.RequireAdmin(probe)

			request := httptest.NewRequest(http.MethodDelete, "/posts/some-post", nil)
			if tt.principal != nil {
				ctx := ctxutil.WithPrincipal(request.Context(), tt.principal)
				request = request.WithContext(ctx)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCalled, probe.called)
		})
	}
}
