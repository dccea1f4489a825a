package posts

// This file defines the content persistence boundary. The service talks to
// the Store interface; the Postgres implementation lives alongside it, and
// tests substitute an in-memory store.
//
// Uniqueness and referential integrity are enforced by the schema and mapped
// to typed errors here: a duplicate title surfaces as ErrDuplicateTitle, a
// comment against a vanished post as NotFound. Deleting a post removes its
// comments through the ON DELETE CASCADE constraint, inside the same
// statement, so no concurrent reader ever observes an orphaned comment.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/chickenblog-go/apperror"
)

// PostgreSQL error codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ErrDuplicateTitle reports a post create or update against a title that
// another post already holds.
var ErrDuplicateTitle = apperror.NewConflictError("a post with this title already exists", nil)

// Store is the persistence boundary for posts and comments. Listings are in
// insertion order. Implementations return apperror-typed errors:
// ErrDuplicateTitle for title conflicts, NotFoundError for missing posts.
type Store interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id int) (*Post, error)
	// CreatePost persists a new post and fills in the allocated identifier.
	CreatePost(ctx context.Context, post *Post) (*Post, error)
	// UpdatePost rewrites the mutable fields of a post. Author and date are
	// immutable and not part of the update.
	UpdatePost(ctx context.Context, id int, form PostForm) (*Post, error)
	// DeletePost removes a post and, by cascade, its comments.
	DeletePost(ctx context.Context, id int) error
	// AddComment persists a new comment and fills in the allocated identifier.
	AddComment(ctx context.Context, comment *Comment) (*Comment, error)
	// ListCommentsForPost returns the comments of one post, oldest first,
	// with author display names resolved.
	ListCommentsForPost(ctx context.Context, postID int) ([]Comment, error)
}

// PostgresStore is the pgx-backed Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore on the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListPosts returns all posts in insertion order.
func (s *PostgresStore) ListPosts(ctx context.Context) ([]Post, error) {
	query := `SELECT id, author_id, title, subtitle, date, body, img_url
	          FROM posts ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	var result []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImageURL); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	return result, nil
}

// GetPost returns one post by identifier.
func (s *PostgresStore) GetPost(ctx context.Context, id int) (*Post, error) {
	var p Post
	query := `SELECT id, author_id, title, subtitle, date, body, img_url
	          FROM posts WHERE id = $1`
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("post %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return &p, nil
}

// CreatePost inserts a post, relying on the title unique constraint so two
// concurrent creates with the same title cannot both succeed.
func (s *PostgresStore) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	query := `INSERT INTO posts (author_id, title, subtitle, date, body, img_url)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := s.pool.QueryRow(ctx, query,
		post.AuthorID, post.Title, post.Subtitle, post.Date, post.Body, post.ImageURL).
		Scan(&post.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

// UpdatePost rewrites title, subtitle, body, and image reference in place.
func (s *PostgresStore) UpdatePost(ctx context.Context, id int, form PostForm) (*Post, error) {
	var p Post
	query := `UPDATE posts SET title = $1, subtitle = $2, body = $3, img_url = $4
	          WHERE id = $5
	          RETURNING id, author_id, title, subtitle, date, body, img_url`
	err := s.pool.QueryRow(ctx, query, form.Title, form.Subtitle, form.Body, form.ImageURL, id).
		Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("post %d not found", id), nil)
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}
	return &p, nil
}

// DeletePost removes a post; its comments go with it via the cascade.
func (s *PostgresStore) DeletePost(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("post %d not found", id), nil)
	}
	return nil
}

// AddComment inserts a comment. A foreign-key violation on the post
// reference means the post vanished between page load and submit; that is a
// NotFound, not a server fault.
func (s *PostgresStore) AddComment(ctx context.Context, comment *Comment) (*Comment, error) {
	query := `INSERT INTO comments (post_id, author_id, text)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := s.pool.QueryRow(ctx, query, comment.PostID, comment.AuthorID, comment.Text).
		Scan(&comment.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation &&
			strings.Contains(pgErr.ConstraintName, "post") {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("post %d not found", comment.PostID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to add comment", err)
	}
	return comment, nil
}

// ListCommentsForPost returns one post's comments, oldest first. Filtering
// happens here at the store boundary, never in the presentation layer.
func (s *PostgresStore) ListCommentsForPost(ctx context.Context, postID int) ([]Comment, error) {
	query := `SELECT c.id, c.post_id, c.author_id, c.text, u.name
	          FROM comments c
	          JOIN users u ON u.id = c.author_id
	          WHERE c.post_id = $1
	          ORDER BY c.id`
	rows, err := s.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	defer rows.Close()

	var result []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.AuthorName); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan comment", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	return result, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
