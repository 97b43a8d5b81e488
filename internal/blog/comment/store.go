// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package comment

import "context"

// Repository defines the data access contract for the comment domain.
type Repository interface {
	// ListByPost returns a page of the post's comments, ordered by
	// UpdatedAt descending.
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*Comment, error)

	// CountByPost returns the total number of comments on the post.
	CountByPost(ctx context.Context, postID int64) (int, error)

	// FindByID returns the comment with the given ID, regardless of which
	// post it belongs to; the service checks parentage.
	//
	// Returns [dberr.ErrNotFound] if absent.
	FindByID(ctx context.Context, id int64) (*Comment, error)

	// Create persists a new comment and fills in its generated ID.
	Create(ctx context.Context, c *Comment) error

	// Update persists changes to the comment's content.
	Update(ctx context.Context, c *Comment) error

	// Delete permanently removes a comment.
	Delete(ctx context.Context, id int64) error
}
