// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package comment

import (
	"context"

	"github.com/quillhq/quill/internal/blog/post"
	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/sec"
	"github.com/quillhq/quill/internal/platform/validate"
	"github.com/quillhq/quill/pkg/pagination"
)

// maxContentLen caps comment bodies.
const maxContentLen = 2000

// Service implements the comment use cases.
//
// # Parent resolution
//
// Every operation resolves the parent post by slug FIRST: a missing post is
// 404 and an unreadable (draft) post is 403, before any comment work happens.
// Comments on a draft are exactly as visible as the draft itself.
type Service struct {
	comments Repository
	posts    post.Repository
}

// NewService constructs the comment [Service].
func NewService(comments Repository, posts post.Repository) *Service {
	return &Service{comments: comments, posts: posts}
}

// resolvePost loads the parent post and applies its read policy.
func (service *Service) resolvePost(ctx context.Context, principal *sec.Principal, postSlug string) (*post.Post, error) {
	parent, err := service.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	if !post.CanRead(parent, principal) {
		return nil, apperr.Forbidden("This post is not published")
	}

	return parent, nil
}

// ListResult bundles a page of comments with its pagination metadata.
type ListResult struct {
	Comments []*Comment
	Total    int
	Page     pagination.Result
}

// List returns a paginated page of the post's comments.
//
// The same count-then-clamp flow as post listings: overshooting page numbers
// land on the last page, and an empty thread yields one empty page.
func (service *Service) List(ctx context.Context, principal *sec.Principal, postSlug string, params pagination.Params) (*ListResult, error) {
	// ── 1. Parent Resolution ──────────────────────────────────────────────

	parent, err := service.resolvePost(ctx, principal, postSlug)
	if err != nil {
		return nil, err
	}

	// ── 2. Count ──────────────────────────────────────────────────────────

	total, err := service.comments.CountByPost(ctx, parent.ID)
	if err != nil {
		return nil, err
	}

	// ── 3. Clamp & Fetch ──────────────────────────────────────────────────

	window := pagination.Paginate(params.Page, params.Limit, total)
	comments, err := service.comments.ListByPost(ctx, parent.ID, window.Limit, window.Offset)
	if err != nil {
		return nil, err
	}

	return &ListResult{Comments: comments, Total: total, Page: window}, nil
}

// Create validates and persists a new comment by the principal on the post.
//
// Any authenticated member may comment on a post they can read.
func (service *Service) Create(ctx context.Context, principal *sec.Principal, postSlug, content string) (*Comment, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	// ── 1. Parent Resolution ──────────────────────────────────────────────

	parent, err := service.resolvePost(ctx, principal, postSlug)
	if err != nil {
		return nil, err
	}

	// ── 2. Validation ─────────────────────────────────────────────────────

	v := &validate.Validator{}
	err = v.
		Required("content", content).
		MaxLen("content", content, maxContentLen).
		Err()
	if err != nil {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	c := &Comment{
		PostID:   parent.ID,
		AuthorID: principal.ID,
		Content:  content,
	}
	if err := service.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// findOwned resolves the comment under the given post.
//
// A valid comment ID presented under the wrong post slug is still 404: the
// nested URL is the comment's only address.
func (service *Service) findOwned(ctx context.Context, parent *post.Post, commentID int64) (*Comment, error) {
	c, err := service.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if c.PostID != parent.ID {
		return nil, apperr.NotFound("Comment")
	}

	return c, nil
}

// Update replaces the comment's content.
//
// # Returns
//   - [apperr.NotFound] if the post or the comment is missing.
//   - [apperr.Forbidden] if the principal is neither the comment's author
//     nor an administrator.
func (service *Service) Update(ctx context.Context, principal *sec.Principal, postSlug string, commentID int64, content string) (*Comment, error) {
	// ── 1. Existence (post, then comment) ─────────────────────────────────

	parent, err := service.resolvePost(ctx, principal, postSlug)
	if err != nil {
		return nil, err
	}

	c, err := service.findOwned(ctx, parent, commentID)
	if err != nil {
		return nil, err
	}

	// ── 2. Policy ─────────────────────────────────────────────────────────

	if !CanMutate(c, principal) {
		return nil, apperr.Forbidden("You can only manage your own comments")
	}

	// ── 3. Validate & Persist ─────────────────────────────────────────────

	v := &validate.Validator{}
	err = v.
		Required("content", content).
		MaxLen("content", content, maxContentLen).
		Err()
	if err != nil {
		return nil, err
	}

	c.Content = content
	if err := service.comments.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes the comment.
//
// Same ordering as [Service.Update]: existence before policy.
func (service *Service) Delete(ctx context.Context, principal *sec.Principal, postSlug string, commentID int64) error {
	// ── 1. Existence (post, then comment) ─────────────────────────────────

	parent, err := service.resolvePost(ctx, principal, postSlug)
	if err != nil {
		return err
	}

	c, err := service.findOwned(ctx, parent, commentID)
	if err != nil {
		return err
	}

	// ── 2. Policy ─────────────────────────────────────────────────────────

	if !CanMutate(c, principal) {
		return apperr.Forbidden("You can only manage your own comments")
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	return service.comments.Delete(ctx, c.ID)
}
