// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// HTTP delivery layer for the authentication use cases.
//
// # Architecture
//
// Handlers are the gatekeepers to the system. They are responsible for:
//   - JSON request parsing and fast-fail input checks.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quillhq/quill/internal/platform/constants"
	requestutil "github.com/quillhq/quill/internal/platform/request"
	"github.com/quillhq/quill/internal/platform/respond"
)

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler].
//
// secureCookies should be true outside local development so the refresh
// cookie is only ever sent over TLS.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a JWT pair.
//   - POST /refresh  : Rotates the refresh token and issues a new JWT.
//   - POST /logout   : Revokes the refresh session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	return router
}

// registerRequest is the JSON payload for account creation.
type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// register handles POST /auth/register.
//
// # Returns
//   - HTTP 201 Created with the account profile.
//   - HTTP 400 Bad Request if validation rules fail.
//   - HTTP 409 Conflict if the email is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	// Field validation, uniqueness, and hashing all live in the service.
	user, err := handler.authService.Register(request.Context(), RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, respond.Fields{"user": user})
}

// loginRequest is the JSON payload for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /auth/login.
//
// # Returns
//   - HTTP 200 OK with the access token and account profile. The refresh
//     token travels in an HttpOnly cookie, never in the JSON body.
//   - HTTP 401 Unauthorized for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	handler.setRefreshCookie(writer, session.RefreshToken, session.RefreshTokenExpiresAt)
	respond.OK(writer, respond.Fields{
		"accessToken": session.AccessToken,
		"user":        session.User,
	})
}

// refresh handles POST /auth/refresh.
//
// The refresh token is read from the HttpOnly cookie set at login. Rotation
// replaces both the cookie and the access token.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := handler.refreshTokenFromCookie(request)

	session, err := handler.authService.RefreshSession(request.Context(), refreshToken)
	if err != nil {
		handler.clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken, session.RefreshTokenExpiresAt)
	respond.OK(writer, respond.Fields{
		"accessToken": session.AccessToken,
		"user":        session.User,
	})
}

// logout handles POST /auth/logout. Always succeeds; revoking an unknown
// session is a no-op.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	refreshToken := handler.refreshTokenFromCookie(request)

	if err := handler.authService.Logout(request.Context(), refreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearRefreshCookie(writer)
	respond.OK(writer, respond.Fields{constants.FieldMessage: "Logged out"})
}

// ── Cookie Helpers ───────────────────────────────────────────────────────────

func (handler *Handler) refreshTokenFromCookie(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (handler *Handler) clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
