// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package post

import (
	"context"

	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/sec"
	"github.com/quillhq/quill/internal/platform/validate"
	"github.com/quillhq/quill/pkg/pagination"
	"github.com/quillhq/quill/pkg/slug"
)

// Service implements the post use cases.
//
// # Ordering of checks
//
// Existence is always established before visibility: a request for a missing
// post gets 404, a request for an existing-but-forbidden post gets 403. The
// 404 therefore never doubles as a stealth 403 — drafts are addressable by
// slug, just not readable.
type Service struct {
	posts Repository
}

// NewService constructs the post [Service].
func NewService(posts Repository) *Service {
	return &Service{posts: posts}
}

// ListResult bundles a page of posts with its pagination metadata.
type ListResult struct {
	Posts []*Post
	Total int
	Page  pagination.Result
}

// List returns a paginated page of posts visible to the principal.
//
// # Visibility
//
// Anonymous callers and regular members always get published posts only;
// any status filter they send is ignored rather than rejected. Administrators
// may filter by [StatusAll], [StatusPublished], or [StatusUnpublished]
// (default: all).
//
// # Pagination
//
// The collection is counted first, then the requested page is clamped against
// the real total, so an overshooting page lands on the last page instead of
// an empty one.
func (service *Service) List(ctx context.Context, principal *sec.Principal, f Filter, params pagination.Params) (*ListResult, error) {
	// ── 1. Visibility Resolution ──────────────────────────────────────────

	if !CanListUnpublished(principal) {
		f.Status = StatusPublished
	} else if f.Status == "" {
		f.Status = StatusAll
	}

	v := &validate.Validator{}
	if err := v.OneOf("status", f.Status, StatusAll, StatusPublished, StatusUnpublished).Err(); err != nil {
		return nil, err
	}

	// ── 2. Count ──────────────────────────────────────────────────────────

	total, err := service.posts.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	// ── 3. Clamp & Fetch ──────────────────────────────────────────────────

	window := pagination.Paginate(params.Page, params.Limit, total)
	posts, err := service.posts.List(ctx, f, window.Limit, window.Offset)
	if err != nil {
		return nil, err
	}

	return &ListResult{Posts: posts, Total: total, Page: window}, nil
}

// Get returns a single post by slug.
//
// # Returns
//   - [apperr.NotFound] if no post has this slug.
//   - [apperr.Forbidden] if the post exists but is a draft and the principal
//     is not an administrator.
func (service *Service) Get(ctx context.Context, principal *sec.Principal, postSlug string) (*Post, error) {
	// ── 1. Existence ──────────────────────────────────────────────────────

	p, err := service.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	// ── 2. Visibility ─────────────────────────────────────────────────────

	if !CanRead(p, principal) {
		return nil, apperr.Forbidden("This post is not published")
	}

	return p, nil
}

// CreateInput holds the data for a new post.
type CreateInput struct {
	Title     string
	Content   string
	Slug      string // Optional; derived from Title when empty.
	Published bool
}

// Create validates and persists a new post authored by the principal.
//
// The route guarantees the principal is an administrator; the policy check
// here backstops any future route that forgets the guard.
func (service *Service) Create(ctx context.Context, principal *sec.Principal, input CreateInput) (*Post, error) {
	if !CanMutate(principal) {
		return nil, apperr.Forbidden("Administrator access required")
	}

	// ── 1. Slug Derivation ────────────────────────────────────────────────

	postSlug := input.Slug
	if postSlug == "" {
		postSlug = slug.From(input.Title)
	}

	// ── 2. Validation ─────────────────────────────────────────────────────

	v := &validate.Validator{}
	err := v.
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("content", input.Content).
		Slug("slug", postSlug).
		Err()
	if err != nil {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	p := &Post{
		Slug:      postSlug,
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
		AuthorID:  principal.ID,
	}

	// A duplicate slug surfaces as Conflict via the unique index.
	if err := service.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateInput holds the mutable fields of a post. Nil fields are unchanged.
type UpdateInput struct {
	Title     *string
	Content   *string
	Published *bool
}

// Update applies partial changes to the post with the given slug.
//
// # Returns
//   - [apperr.NotFound] if no post has this slug (checked before any policy).
//   - [apperr.Forbidden] if the principal is not an administrator.
func (service *Service) Update(ctx context.Context, principal *sec.Principal, postSlug string, input UpdateInput) (*Post, error) {
	// ── 1. Existence ──────────────────────────────────────────────────────

	p, err := service.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	// ── 2. Policy ─────────────────────────────────────────────────────────

	if !CanMutate(principal) {
		return nil, apperr.Forbidden("Administrator access required")
	}

	// ── 3. Apply & Validate ───────────────────────────────────────────────

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Content != nil {
		p.Content = *input.Content
	}
	if input.Published != nil {
		p.Published = *input.Published
	}

	v := &validate.Validator{}
	err = v.
		Required("title", p.Title).
		MaxLen("title", p.Title, 200).
		Required("content", p.Content).
		Err()
	if err != nil {
		return nil, err
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := service.posts.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Delete permanently removes the post with the given slug.
//
// # Returns
//   - [apperr.NotFound] if no post has this slug (checked before any policy).
//   - [apperr.Forbidden] if the principal is not an administrator.
func (service *Service) Delete(ctx context.Context, principal *sec.Principal, postSlug string) error {
	// ── 1. Existence ──────────────────────────────────────────────────────

	p, err := service.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return err
	}

	// ── 2. Policy ─────────────────────────────────────────────────────────

	if !CanMutate(principal) {
		return apperr.Forbidden("Administrator access required")
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	return service.posts.Delete(ctx, p.ID)
}
