// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package post

import "context"

// Repository defines the data access contract for the post domain.
//
// # Architecture
//
// The implementation lives in store_postgres.go — the interface lives here
// because the service layer (the consumer) defines what it needs.
type Repository interface {
	// List returns a page of posts matching the filter, ordered by
	// UpdatedAt descending.
	List(ctx context.Context, f Filter, limit, offset int) ([]*Post, error)

	// Count returns the total number of posts matching the filter.
	//
	// Counted with the same filter as [Repository.List] so pagination
	// metadata always agrees with the page contents.
	Count(ctx context.Context, f Filter) (int, error)

	// FindBySlug returns the post with the given slug.
	//
	// Returns [dberr.ErrNotFound] if no match is found. Visibility is NOT
	// applied here; the service layer decides who may see the result.
	FindBySlug(ctx context.Context, slug string) (*Post, error)

	// Create persists a new post and fills in its generated ID.
	//
	// Returns a wrapped Conflict error if the slug is already taken.
	Create(ctx context.Context, p *Post) error

	// Update persists changes to an existing post's mutable fields.
	Update(ctx context.Context, p *Post) error

	// Delete permanently removes a post and, via cascade, its comments.
	Delete(ctx context.Context, id int64) error
}
