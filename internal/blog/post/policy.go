// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package post

import "github.com/quillhq/quill/internal/platform/sec"

// Visibility and mutation policy for posts.
//
// # Purity
//
// Every function here is a pure predicate over (post, principal): no I/O, no
// clock, no logging. The service layer decides WHEN to ask; this file decides
// WHAT the answer is. A nil principal means an anonymous caller.

// CanRead reports whether the principal may read the post.
//
// Published posts are public. Drafts are visible to administrators only —
// authorship grants no access.
func CanRead(p *Post, principal *sec.Principal) bool {
	if p.Published {
		return true
	}
	return principal != nil && principal.IsAdmin
}

// CanListUnpublished reports whether the principal may request draft posts
// in a listing.
func CanListUnpublished(principal *sec.Principal) bool {
	return principal != nil && principal.IsAdmin
}

// CanMutate reports whether the principal may create, update, or delete
// posts. Post mutation is an administrator capability regardless of
// authorship.
func CanMutate(principal *sec.Principal) bool {
	return principal != nil && principal.IsAdmin
}
