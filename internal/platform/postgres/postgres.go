// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Package postgres manages the PostgreSQL connection pool used by all
// persistent stores.
//
// # Architecture
//
// This is Infrastructure-layer code: it owns the physical connections
// (pgxpool) while the domain packages own the queries that run on them.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillhq/quill/internal/platform/constants"
)

// Pool tuning for the Quill workload: read-heavy, short transactions.
const (
	maxConns = 20
	// minConns keeps warm connections to avoid cold-start latency on bursts.
	minConns = 4
	// maxConnLifetime recycles connections so server-side state never accumulates.
	maxConnLifetime = 45 * time.Minute
	maxConnIdleTime = 10 * time.Minute
	// healthCheckPeriod is the interval for background connection probing.
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// NewPool builds, tunes, and validates a PostgreSQL connection pool.
//
// # Parameters
//   - ctx: Context bounding the initial connection attempt.
//   - dsn: A postgres:// URL or libpq-compatible connection string.
//   - logger: Structured logger for pool lifecycle events.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	// Every new physical connection gets a statement timeout so a runaway
	// query can never outlive the request that issued it.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		timeoutQuery := fmt.Sprintf("SET statement_timeout = '%ds'", int(constants.GlobalRequestTimeout.Seconds()))
		_, err := conn.Exec(ctx, timeoutQuery)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	// Fail fast at startup if the database is unreachable.
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	stats := pool.Stat()
	logger.Info("postgres_pool_ready",
		slog.Int("max_conns", int(stats.MaxConns())),
		slog.Int("total_conns", int(stats.TotalConns())),
	)

	return pool, nil
}

// Ping verifies that the pool can reach the database.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
