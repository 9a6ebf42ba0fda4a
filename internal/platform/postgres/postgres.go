// Package postgres opens the connection pool and runs schema migrations.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"bookshelf/internal/config"
	"bookshelf/internal/platform/logger"
)

const pingTimeout = 2 * time.Second

// Open creates a pool and pings it. With traceSQL set every query is logged
// through log at its current level.
func Open(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger, traceSQL bool) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn %s: %w", RedactDSN(cfg.DSN), err)
	}
	poolConfig.MaxConns = cfg.MaxConns

	if traceSQL {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(log.With().Str("component", "pgx").Logger()),
			LogLevel: logger.PgxTraceLevel(log.GetLevel()),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(cfg.DSN), err)
	}

	log.Info().Str("dsn", RedactDSN(cfg.DSN)).Int32("max_conns", cfg.MaxConns).Msg("database connection OK")
	return pool, nil
}

// RedactDSN hides the credentials in a URL style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.LastIndex(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
