// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package comment

import "github.com/quillhq/quill/internal/platform/sec"

// CanMutate reports whether the principal may update or delete the comment.
//
// Unlike posts, comments are member-owned content: the author may always
// manage their own comment, and administrators may manage anyone's.
// Pure predicate; no I/O.
func CanMutate(c *Comment, principal *sec.Principal) bool {
	if principal == nil {
		return false
	}
	return principal.IsAdmin || c.AuthorID == principal.ID
}
