// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quillhq/quill/internal/platform/constants"
	"github.com/quillhq/quill/internal/platform/middleware"
	requestutil "github.com/quillhq/quill/internal/platform/request"
	"github.com/quillhq/quill/internal/platform/respond"
	"github.com/quillhq/quill/pkg/pagination"
)

// Handler implements the post HTTP endpoints.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] with the post endpoints.
//
// # Endpoints
//   - GET    /        : Paginated listing. Public; drafts admin-only.
//   - POST   /        : Create a post. Admin only.
//   - GET    /{slug}  : Single post. Public; drafts admin-only.
//   - PUT    /{slug}  : Update a post. Admin only.
//   - DELETE /{slug}  : Delete a post. Admin only.
//
// Reads run the optional identity gate so drafts stay visible to admins;
// mutations run the mandatory gate plus the admin gate instead.
func (handler *Handler) Routes(gate *middleware.Identity) chi.Router {
	router := chi.NewRouter()

	router.Group(func(public chi.Router) {
		public.Use(gate.Authenticate)
		public.Get("/", handler.list)
		public.Get("/{slug}", handler.get)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(gate.RequireAuth, middleware.RequireAdmin)
		admin.Post("/", handler.create)
		admin.Put("/{slug}", handler.update)
		admin.Delete("/{slug}", handler.remove)
	})

	return router
}

// list handles GET /posts.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	principal := requestutil.Principal(request)
	params := pagination.FromRequest(request, Bounds)
	filter := Filter{Status: request.URL.Query().Get("status")}

	result, err := handler.postService.List(request.Context(), principal, filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"posts":       result.Posts,
		"totalPosts":  result.Total,
		"totalPages":  result.Page.TotalPages,
		"currentPage": result.Page.Page,
		"limit":       result.Page.Limit,
	})
}

// get handles GET /posts/{slug}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	principal := requestutil.Principal(request)
	postSlug := requestutil.Param(request, "slug")

	p, err := handler.postService.Get(request.Context(), principal, postSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"post": p})
}

// postRequest is the JSON payload for creating a post.
type postRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Slug      string `json:"slug"`
	Published bool   `json:"published"`
}

// create handles POST /posts.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.postService.Create(request.Context(), principal, CreateInput{
		Title:     input.Title,
		Content:   input.Content,
		Slug:      input.Slug,
		Published: input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Fields{"post": p})
}

// updateRequest is the JSON payload for a partial post update.
type updateRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// update handles PUT /posts/{slug}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.postService.Update(request.Context(), principal, requestutil.Param(request, "slug"), UpdateInput{
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"post": p})
}

// remove handles DELETE /posts/{slug}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.postService.Delete(request.Context(), principal, requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{constants.FieldMessage: "Post deleted"})
}
