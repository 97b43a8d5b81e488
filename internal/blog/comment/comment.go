// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Package comment implements the comment domain: entities, mutation policy,
// use cases, and storage.
//
// Comments are always addressed through their parent post
// (/posts/{slug}/comments/...); there is no standalone comment surface.
package comment

import (
	"time"

	"github.com/quillhq/quill/pkg/pagination"
)

// Bounds are the pagination limits for comment listings. Comment pages are
// smaller than post pages.
var Bounds = pagination.Bounds{Default: 10, Min: 5, Max: 25}

// Comment is a reader's response attached to a post.
//
// # Visibility
//
// Comments have no published flag of their own; they inherit visibility from
// their parent post. If the principal can read the post, they can read its
// comments.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
