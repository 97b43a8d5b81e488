// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Command seed populates a development database with a known fixture set:
// one administrator, two members, three published posts, and a comment from
// each member on each post.
//
// It is idempotent in spirit, not in mechanism: run it against a fresh
// database. Existing emails or slugs will surface as conflicts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/quillhq/quill/internal/blog/comment"
	"github.com/quillhq/quill/internal/blog/post"
	"github.com/quillhq/quill/internal/platform/config"
	"github.com/quillhq/quill/internal/platform/migration"
	pgstore "github.com/quillhq/quill/internal/platform/postgres"
	"github.com/quillhq/quill/internal/platform/sec"
	"github.com/quillhq/quill/internal/users/auth"
	"github.com/quillhq/quill/pkg/slug"
	"github.com/quillhq/quill/pkg/uuid"
)

const seedPassword = "password123"

type seedUser struct {
	firstName string
	lastName  string
	email     string
	isAdmin   bool
}

var seedUsers = []seedUser{
	{"Ada", "Admin", "admin@email.com", true},
	{"Huan", "Pham", "huan@email.com", false},
	{"Mia", "Torres", "mia@email.com", false},
}

var seedTitles = []string{
	"Welcome to Quill",
	"Writing Well Is Rewriting",
	"A Field Guide to Drafts",
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	fatalOn(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	fatalOn(log, err, "connect to postgres")
	defer pool.Close()

	fatalOn(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	users := auth.NewUserRepository(pool)
	posts := post.NewRepository(pool)
	comments := comment.NewRepository(pool)

	// ── 1. Accounts ───────────────────────────────────────────────────────
	passwordHash, err := sec.HashPassword(seedPassword)
	fatalOn(log, err, "hash seed password")

	accounts := make([]*auth.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		user := &auth.User{
			ID:           uuid.New(),
			FirstName:    su.firstName,
			LastName:     su.lastName,
			Email:        su.email,
			PasswordHash: passwordHash,
			IsAdmin:      su.isAdmin,
		}
		fatalOn(log, users.Create(ctx, user), "create user "+su.email)
		accounts = append(accounts, user)
		log.Info("seeded_user", slog.String("email", user.Email), slog.Bool("admin", user.IsAdmin))
	}

	adminUser := accounts[0]
	members := accounts[1:]

	// ── 2. Posts ──────────────────────────────────────────────────────────
	seededPosts := make([]*post.Post, 0, len(seedTitles))
	for i, title := range seedTitles {
		p := &post.Post{
			Slug:      slug.From(title),
			Title:     title,
			Content:   fmt.Sprintf("This is the body of seed post %d.", i+1),
			Published: true,
			AuthorID:  adminUser.ID,
		}
		fatalOn(log, posts.Create(ctx, p), "create post "+p.Slug)
		seededPosts = append(seededPosts, p)
		log.Info("seeded_post", slog.String("slug", p.Slug))
	}

	// ── 3. Comments ───────────────────────────────────────────────────────
	// Every member leaves a comment on every post.
	total := 0
	for _, p := range seededPosts {
		for _, m := range members {
			c := &comment.Comment{
				PostID:   p.ID,
				AuthorID: m.ID,
				Content:  fmt.Sprintf("%s here — enjoyed %q!", m.FirstName, p.Title),
			}
			fatalOn(log, comments.Create(ctx, c), "create comment")
			total++
		}
	}

	log.Info("seed_complete",
		slog.Int("users", len(accounts)),
		slog.Int("posts", len(seededPosts)),
		slog.Int("comments", total),
	)
}

func fatalOn(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
