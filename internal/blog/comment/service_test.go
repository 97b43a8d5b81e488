// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package comment

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/internal/blog/post"
	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/dberr"
	"github.com/quillhq/quill/internal/platform/sec"
	"github.com/quillhq/quill/pkg/pagination"
)

// # In-Memory Fakes

type memoryPostRepo struct {
	posts map[string]*post.Post
}

func (repo *memoryPostRepo) FindBySlug(ctx context.Context, slug string) (*post.Post, error) {
	if p, ok := repo.posts[slug]; ok {
		return p, nil
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryPostRepo) List(ctx context.Context, f post.Filter, limit, offset int) ([]*post.Post, error) {
	return nil, nil
}
func (repo *memoryPostRepo) Count(ctx context.Context, f post.Filter) (int, error) { return 0, nil }
func (repo *memoryPostRepo) Create(ctx context.Context, p *post.Post) error        { return nil }
func (repo *memoryPostRepo) Update(ctx context.Context, p *post.Post) error        { return nil }
func (repo *memoryPostRepo) Delete(ctx context.Context, id int64) error            { return nil }

type memoryCommentRepo struct {
	comments map[int64]*Comment
	nextID   int64
}

func newMemoryCommentRepo() *memoryCommentRepo {
	return &memoryCommentRepo{comments: make(map[int64]*Comment), nextID: 1}
}

func (repo *memoryCommentRepo) byPost(postID int64) []*Comment {
	matched := make([]*Comment, 0)
	for _, c := range repo.comments {
		if c.PostID == postID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return matched
}

func (repo *memoryCommentRepo) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*Comment, error) {
	matched := repo.byPost(postID)
	if offset >= len(matched) {
		return []*Comment{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (repo *memoryCommentRepo) CountByPost(ctx context.Context, postID int64) (int, error) {
	return len(repo.byPost(postID)), nil
}

func (repo *memoryCommentRepo) FindByID(ctx context.Context, id int64) (*Comment, error) {
	if c, ok := repo.comments[id]; ok {
		return c, nil
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryCommentRepo) Create(ctx context.Context, c *Comment) error {
	c.ID = repo.nextID
	repo.nextID++
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	repo.comments[c.ID] = c
	return nil
}

func (repo *memoryCommentRepo) Update(ctx context.Context, c *Comment) error {
	if _, ok := repo.comments[c.ID]; !ok {
		return dberr.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	repo.comments[c.ID] = c
	return nil
}

func (repo *memoryCommentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := repo.comments[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.comments, id)
	return nil
}

// # Fixtures

func member() *sec.Principal  { return &sec.Principal{ID: "member-1"} }
func member2() *sec.Principal { return &sec.Principal{ID: "member-2"} }
func admin() *sec.Principal   { return &sec.Principal{ID: "admin-1", IsAdmin: true} }

// newFixture wires a service over one published post and one draft.
func newFixture() (*Service, *memoryCommentRepo) {
	posts := &memoryPostRepo{posts: map[string]*post.Post{
		"live-post": {ID: 1, Slug: "live-post", Published: true},
		"draft":     {ID: 2, Slug: "draft", Published: false},
	}}
	comments := newMemoryCommentRepo()
	return NewService(comments, posts), comments
}

func defaultParams() pagination.Params {
	return pagination.Params{Page: 1, Limit: Bounds.Default}
}

// # Listing

func TestList_MissingPost_NotFound(t *testing.T) {
	service, _ := newFixture()

	_, err := service.List(context.Background(), nil, "missing", defaultParams())

	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

// Comments inherit the parent post's visibility: a draft's thread is
// forbidden to non-admins even though the comments themselves have no flag.
func TestList_DraftPost_Visibility(t *testing.T) {
	service, _ := newFixture()

	_, err := service.List(context.Background(), member(), "draft", defaultParams())
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	_, err = service.List(context.Background(), admin(), "draft", defaultParams())
	require.NoError(t, err)
}

func TestList_PaginationClamp(t *testing.T) {
	service, comments := newFixture()
	for i := 0; i < 12; i++ {
		comments.Create(context.Background(), &Comment{PostID: 1, AuthorID: "member-1", Content: "c"})
	}

	result, err := service.List(context.Background(), nil, "live-post", pagination.Params{Page: 50, Limit: 5})

	require.NoError(t, err)
	assert.Equal(t, 12, result.Total)
	assert.Equal(t, 3, result.Page.TotalPages)
	assert.Equal(t, 3, result.Page.Page)
	assert.Len(t, result.Comments, 2)
}

func TestList_EmptyThread_OnePage(t *testing.T) {
	service, _ := newFixture()

	result, err := service.List(context.Background(), nil, "live-post", defaultParams())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 1, result.Page.TotalPages)
	assert.Empty(t, result.Comments)
}

// # Creation

func TestCreate_AnonymousUnauthorized(t *testing.T) {
	service, _ := newFixture()

	_, err := service.Create(context.Background(), nil, "live-post", "hello")

	require.Error(t, err)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

func TestCreate_MemberOnPublishedPost(t *testing.T) {
	service, _ := newFixture()

	c, err := service.Create(context.Background(), member(), "live-post", "great read")

	require.NoError(t, err)
	assert.Equal(t, int64(1), c.PostID)
	assert.Equal(t, "member-1", c.AuthorID)
}

func TestCreate_MemberOnDraft_Forbidden(t *testing.T) {
	service, _ := newFixture()

	_, err := service.Create(context.Background(), member(), "draft", "sneaky")

	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)
}

func TestCreate_EmptyContent_Validation(t *testing.T) {
	service, _ := newFixture()

	_, err := service.Create(context.Background(), member(), "live-post", "   ")

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Mutations

func TestUpdate_OwnershipMatrix(t *testing.T) {
	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
	}{
		{"author_allowed", member(), 0},
		{"other_member_forbidden", member2(), 403},
		{"admin_allowed", admin(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, comments := newFixture()
			seedComment := &Comment{PostID: 1, AuthorID: "member-1", Content: "original"}
			require.NoError(t, comments.Create(context.Background(), seedComment))

			c, err := service.Update(context.Background(), tt.principal, "live-post", seedComment.ID, "edited")
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "edited", c.Content)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, apperr.As(err).HTTPStatus)
			}
		})
	}
}

// Existence wins over policy: a foreign member updating a missing comment
// sees 404, never 403.
func TestUpdate_MissingComment_NotFound(t *testing.T) {
	service, _ := newFixture()

	_, err := service.Update(context.Background(), member2(), "live-post", 999, "edit")

	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

// A real comment addressed through the wrong post's URL does not exist.
func TestUpdate_WrongParentSlug_NotFound(t *testing.T) {
	service, comments := newFixture()
	seedComment := &Comment{PostID: 1, AuthorID: "member-1", Content: "original"}
	require.NoError(t, comments.Create(context.Background(), seedComment))

	_, err := service.Update(context.Background(), admin(), "draft", seedComment.ID, "edit")

	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

func TestDelete_OwnershipMatrix(t *testing.T) {
	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
	}{
		{"author_allowed", member(), 0},
		{"other_member_forbidden", member2(), 403},
		{"admin_allowed", admin(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, comments := newFixture()
			seedComment := &Comment{PostID: 1, AuthorID: "member-1", Content: "bye"}
			require.NoError(t, comments.Create(context.Background(), seedComment))

			err := service.Delete(context.Background(), tt.principal, "live-post", seedComment.ID)
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				_, findErr := comments.FindByID(context.Background(), seedComment.ID)
				require.Error(t, findErr)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, apperr.As(err).HTTPStatus)
			}
		})
	}
}
