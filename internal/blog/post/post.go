// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Package post implements the blog post domain: entities, visibility policy,
// use cases, and storage.
package post

import (
	"time"

	"github.com/quillhq/quill/pkg/pagination"
)

// Status filters for admin list queries.
const (
	StatusAll         = "all"
	StatusPublished   = "published"
	StatusUnpublished = "unpublished"
)

// Bounds are the pagination limits for post listings.
var Bounds = pagination.Bounds{Default: 10, Min: 5, Max: 50}

// Post is the central aggregate of the Quill domain.
//
// # Visibility
//
// A post is either published (visible to everyone) or a draft (visible only
// to administrators). There is no per-author draft visibility: regular
// members never see unpublished posts, not even their own.
type Post struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"` // URL-safe identifier (e.g. "my-first-post").
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter holds the parameters for a filtered post list query.
//
// # Sorting
//
// Listings are always ordered by UpdatedAt descending; recently edited
// content surfaces first. There is no caller-selectable sort.
type Filter struct {
	// Status is one of [StatusAll], [StatusPublished], [StatusUnpublished].
	// Only administrators may request anything other than published.
	Status string
}
