// Package postgres implements the repository interfaces on PostgreSQL using
// a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"athletrack/backend/internal/repository"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// NewDBPool parses the connection URL, opens a pool and pings it.
func NewDBPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// translateError maps constraint violations onto repository errors.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repository.ErrDuplicate
		case pgForeignKeyViolation:
			return repository.ErrNotFound
		}
	}
	return err
}
