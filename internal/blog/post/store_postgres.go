// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package post

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

// statusPredicate translates a [Filter] status into a WHERE fragment.
// StatusAll matches everything, so it contributes no predicate.
func statusPredicate(f Filter) (string, bool) {
	switch f.Status {
	case StatusPublished:
		return "WHERE published = TRUE", true
	case StatusUnpublished:
		return "WHERE published = FALSE", true
	}
	return "", false
}

// List returns a page of posts ordered by most recently updated first.
func (repository *PostgresRepository) List(ctx context.Context, f Filter, limit, offset int) ([]*Post, error) {
	query := `
		SELECT id, slug, title, content, published, authorid, createdat, updatedat
		FROM blog.post`

	if predicate, ok := statusPredicate(f); ok {
		query += "\n\t\t" + predicate
	}
	query += `
		ORDER BY updatedat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "post_list")
	}
	defer rows.Close()

	posts := make([]*Post, 0, limit)
	for rows.Next() {
		p := &Post{}
		err := rows.Scan(
			&p.ID,
			&p.Slug,
			&p.Title,
			&p.Content,
			&p.Published,
			&p.AuthorID,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "post_list_scan")
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "post_list_rows")
	}

	return posts, nil
}

// Count returns the total number of posts matching the filter.
func (repository *PostgresRepository) Count(ctx context.Context, f Filter) (int, error) {
	query := "SELECT COUNT(*) FROM blog.post"
	if predicate, ok := statusPredicate(f); ok {
		query += " " + predicate
	}

	var total int
	if err := repository.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "post_count")
	}

	return total, nil
}

// FindBySlug returns the post with the given slug, published or not.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	const query = `
		SELECT id, slug, title, content, published, authorid, createdat, updatedat
		FROM blog.post
		WHERE slug = $1`

	p := &Post{}
	err := repository.pool.QueryRow(ctx, query, slug).Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Content,
		&p.Published,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "post_find_by_slug")
	}

	return p, nil
}

// Create persists a new post and fills in the generated ID.
func (repository *PostgresRepository) Create(ctx context.Context, p *Post) error {
	const query = `
		INSERT INTO blog.post (slug, title, content, published, authorid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		p.Slug,
		p.Title,
		p.Content,
		p.Published,
		p.AuthorID,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)

	if err != nil {
		return dberr.Wrap(err, "post_create")
	}

	return nil
}

// Update persists changes to an existing post's mutable fields.
func (repository *PostgresRepository) Update(ctx context.Context, p *Post) error {
	const query = `
		UPDATE blog.post
		SET slug = $2, title = $3, content = $4, published = $5, updatedat = $6
		WHERE id = $1`

	p.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		p.ID,
		p.Slug,
		p.Title,
		p.Content,
		p.Published,
		p.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "post_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "post_update")
	}

	return nil
}

// Delete permanently removes a post. Comments go with it via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM blog.post WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "post_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "post_delete")
	}

	return nil
}
