// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package comment

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/constants"
	"github.com/quillhq/quill/internal/platform/middleware"
	requestutil "github.com/quillhq/quill/internal/platform/request"
	"github.com/quillhq/quill/internal/platform/respond"
	"github.com/quillhq/quill/pkg/pagination"
)

// Handler implements the comment HTTP endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] with the comment endpoints.
//
// # Endpoints (mounted under /posts/{slug}/comments)
//   - GET    /             : Paginated listing. Public on published posts.
//   - POST   /             : Add a comment. Authenticated members.
//   - PUT    /{commentId}  : Edit a comment. Author or admin.
//   - DELETE /{commentId}  : Remove a comment. Author or admin.
func (handler *Handler) Routes(gate *middleware.Identity) chi.Router {
	router := chi.NewRouter()

	router.With(gate.Authenticate).Get("/", handler.list)

	router.Group(func(member chi.Router) {
		member.Use(gate.RequireAuth)
		member.Post("/", handler.create)
		member.Put("/{commentId}", handler.update)
		member.Delete("/{commentId}", handler.remove)
	})

	return router
}

// commentID parses the {commentId} URL parameter.
func commentID(request *http.Request) (int64, error) {
	raw := requestutil.Param(request, "commentId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.ValidationError("Comment ID must be a positive integer")
	}
	return id, nil
}

// list handles GET /posts/{slug}/comments.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	principal := requestutil.Principal(request)
	params := pagination.FromRequest(request, Bounds)

	result, err := handler.commentService.List(request.Context(), principal, requestutil.Param(request, "slug"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"comments":      result.Comments,
		"totalComments": result.Total,
		"totalPages":    result.Page.TotalPages,
		"currentPage":   result.Page.Page,
		"limit":         result.Page.Limit,
	})
}

// commentRequest is the JSON payload for creating or editing a comment.
type commentRequest struct {
	Content string `json:"content"`
}

// create handles POST /posts/{slug}/comments.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.commentService.Create(request.Context(), principal, requestutil.Param(request, "slug"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Fields{"comment": c})
}

// update handles PUT /posts/{slug}/comments/{commentId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := commentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.commentService.Update(request.Context(), principal, requestutil.Param(request, "slug"), id, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"comment": c})
}

// remove handles DELETE /posts/{slug}/comments/{commentId}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := commentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), principal, requestutil.Param(request, "slug"), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{constants.FieldMessage: "Comment deleted"})
}
