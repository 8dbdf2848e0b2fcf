package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/config"
)

func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpen)
	poolConfig.MinConns = int32(cfg.MaxIdle)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.HealthCheckPeriod = 30 * time.Second

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the analytics tables if they are missing. The event
// collections are append-mostly, so no migration tooling is carried; a new
// deployment only ever adds tables.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS page_views (
			id TEXT PRIMARY KEY,
			page_name TEXT NOT NULL,
			visitor_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			referrer TEXT NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS image_views (
			id TEXT PRIMARY KEY,
			image_title TEXT NOT NULL,
			visitor_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			referrer TEXT NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id TEXT PRIMARY KEY,
			interaction_type TEXT NOT NULL,
			target TEXT NOT NULL DEFAULT '',
			visitor_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			referrer TEXT NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			visitor_id TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS visitors (
			id TEXT PRIMARY KEY,
			first_seen_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS daily_summaries (
			day DATE PRIMARY KEY,
			page_views BIGINT NOT NULL DEFAULT 0,
			image_views BIGINT NOT NULL DEFAULT 0,
			interactions BIGINT NOT NULL DEFAULT 0,
			unique_visitors BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_page_views_occurred_at ON page_views (occurred_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_image_views_occurred_at ON image_views (occurred_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_occurred_at ON interactions (occurred_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
