// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillhq/quill/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "My First Post", "my-first-post"},
		{"accents_stripped", "Café Crème Brûlée", "cafe-creme-brulee"},
		{"punctuation", "Hello, World! (Part 2)", "hello-world-part-2"},
		{"consecutive_separators", "a  --  b", "a-b"},
		{"leading_trailing", "  trimmed  ", "trimmed"},
		{"already_slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
