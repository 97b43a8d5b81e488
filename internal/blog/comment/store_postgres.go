// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package comment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillhq/quill/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByPost returns a page of comments ordered by most recently updated first.
func (repository *PostgresRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*Comment, error) {
	const query = `
		SELECT id, postid, authorid, content, createdat, updatedat
		FROM blog.comment
		WHERE postid = $1
		ORDER BY updatedat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "comment_list")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		c := &Comment{}
		err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.AuthorID,
			&c.Content,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "comment_list_scan")
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "comment_list_rows")
	}

	return comments, nil
}

// CountByPost returns the total number of comments on a post.
func (repository *PostgresRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	const query = "SELECT COUNT(*) FROM blog.comment WHERE postid = $1"

	var total int
	if err := repository.pool.QueryRow(ctx, query, postID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "comment_count")
	}

	return total, nil
}

// FindByID returns the comment with the given ID.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Comment, error) {
	const query = `
		SELECT id, postid, authorid, content, createdat, updatedat
		FROM blog.comment
		WHERE id = $1`

	c := &Comment{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "comment_find_by_id")
	}

	return c, nil
}

// Create persists a new comment and fills in the generated ID.
func (repository *PostgresRepository) Create(ctx context.Context, c *Comment) error {
	const query = `
		INSERT INTO blog.comment (postid, authorid, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		c.PostID,
		c.AuthorID,
		c.Content,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID)

	if err != nil {
		return dberr.Wrap(err, "comment_create")
	}

	return nil
}

// Update persists the comment's content.
func (repository *PostgresRepository) Update(ctx context.Context, c *Comment) error {
	const query = `
		UPDATE blog.comment
		SET content = $2, updatedat = $3
		WHERE id = $1`

	c.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query, c.ID, c.Content, c.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "comment_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "comment_update")
	}

	return nil
}

// Delete permanently removes a comment.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM blog.comment WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "comment_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "comment_delete")
	}

	return nil
}
