// Package db opens the Postgres pool shared by the repositories.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrNoDatabaseURL = errors.New("database url not configured")

const pingTimeout = 5 * time.Second

var (
	parseConfig = pgxpool.ParseConfig
	newPool     = pgxpool.NewWithConfig
	pingPool    = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pool.Ping(ctx)
	}
)

// Connect opens a pool for url and verifies it with a ping. An empty url
// returns ErrNoDatabaseURL; persistence is required, so callers treat any
// error as fatal.
func Connect(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrNoDatabaseURL
	}

	cfg, err := parseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := newPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pingPool(pingCtx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info().
		Str("host", cfg.ConnConfig.Host).
		Str("database", cfg.ConnConfig.Database).
		Int32("max_conns", cfg.MaxConns).
		Msg("connected to postgres")
	return pool, nil
}
