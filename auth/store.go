package auth

// This file defines the user persistence boundary. The service talks to the
// UserStore interface; the Postgres implementation lives alongside it, and
// tests substitute an in-memory store.

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/chickenblog-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations; on the users table the only unique constraint is email.
const pgUniqueViolation = "23505"

// UserStore is the persistence boundary for user records. Implementations
// return apperror-typed errors: ErrEmailTaken for a duplicate email on
// create, NotFoundError for missing rows on lookup.
type UserStore interface {
	// CreateUser persists a new user and fills in the allocated identifier
	// and creation time.
	CreateUser(ctx context.Context, user *User) (*User, error)
	// GetUserByEmail looks up a user by exact email. The match is
	// case-sensitive, like the unique constraint behind it.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByID looks up a user by identifier.
	GetUserByID(ctx context.Context, id int) (*User, error)
}

// PostgresUserStore is the pgx-backed UserStore.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a PostgresUserStore on the given pool.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// CreateUser inserts the user, relying on the email unique constraint rather
// than a read-then-write check so concurrent registrations cannot race past
// each other.
func (s *PostgresUserStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (name, email, password)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := s.pool.QueryRow(ctx, query, user.Name, user.Email, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// GetUserByEmail looks up a user by exact email.
func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	err := s.pool.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with email '%s' not found", email), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}
	return &user, nil
}

// GetUserByID looks up a user by identifier.
func (s *PostgresUserStore) GetUserByID(ctx context.Context, id int) (*User, error) {
	var user User
	query := `SELECT id, name, email, password, created_at FROM users WHERE id = $1`
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by ID", err)
	}
	return &user, nil
}
