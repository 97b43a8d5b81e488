// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillhq/quill/internal/platform/sec"
)

func TestCanMutate(t *testing.T) {
	c := &Comment{ID: 1, PostID: 1, AuthorID: "member-1"}

	tests := []struct {
		name      string
		principal *sec.Principal
		want      bool
	}{
		{"anonymous", nil, false},
		{"author", &sec.Principal{ID: "member-1"}, true},
		{"other_member", &sec.Principal{ID: "member-2"}, false},
		{"admin_not_author", &sec.Principal{ID: "admin-1", IsAdmin: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(c, tt.principal))
		})
	}
}
