// Package db provides database connectivity for the blog application.
// It establishes the pgx connection pool and creates the relational schema
// idempotently at startup. The schema is the single shared resource of the
// whole application: three tables (users, posts, comments) whose constraints
// carry the referential integrity rules the rest of the code relies on.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/chickenblog-go/apperror"
	"github.com/user/chickenblog-go/config"
)

// schemaStatements is the idempotent DDL executed at startup. Each statement
// uses IF NOT EXISTS so a restart against an existing database is a no-op.
//
// Integrity rules encoded here rather than in application code:
//   - users.email is globally unique;
//   - posts.title is globally unique;
//   - every post and comment references an existing user;
//   - deleting a post cascades to its comments, so a comment can never
//     reference a deleted post.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id SERIAL PRIMARY KEY,
		author_id INTEGER NOT NULL REFERENCES users(id),
		title TEXT NOT NULL UNIQUE,
		subtitle TEXT NOT NULL,
		date TEXT NOT NULL,
		body TEXT NOT NULL,
		img_url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id SERIAL PRIMARY KEY,
		post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		author_id INTEGER NOT NULL REFERENCES users(id),
		text TEXT NOT NULL
	)`,
}

// NewPool establishes a connection pool to PostgreSQL using the provided
// configuration. The pool is configured with max connections, idle time and
// lifetime limits, and the connection is verified with a ping before the pool
// is handed to the rest of the application.
func NewPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Bound pool creation so an unreachable database fails startup promptly
	// instead of blocking indefinitely.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to database %s", cfg.DBName), err)
	}

	return pool, nil
}

// EnsureSchema creates the users, posts, and comments tables if they do not
// already exist. It is safe to call on every startup.
func EnsureSchema(pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := pool.Exec(ctx, stmt)
		cancel()
		if err != nil {
			return apperror.NewDatabaseError("failed to create schema", err)
		}
	}
	return nil
}
