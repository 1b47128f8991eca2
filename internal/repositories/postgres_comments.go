package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/meatdealer/backend/internal/db"
	"github.com/meatdealer/backend/internal/models"
)

// PostgresCommentRepository provides PostgreSQL-backed persistence for
// profile comments and their moderation state.
type PostgresCommentRepository struct {
	pool db.Pool
}

// NewPostgresCommentRepository constructs a comment repository backed by PostgreSQL.
func NewPostgresCommentRepository(pool db.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create persists a new comment awaiting moderation.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment models.Comment) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO comments (id, profile_id, author_id, text, approved, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, comment.ID, comment.ProfileID, comment.AuthorID, comment.Text, comment.Approved, comment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// ListApproved returns the approved comments for a profile, oldest first.
func (r *PostgresCommentRepository) ListApproved(ctx context.Context, profileID string) ([]models.Comment, error) {
	return r.list(ctx, `
        SELECT c.id, c.profile_id, c.author_id, u.full_name, c.text, c.approved, c.created_at
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.profile_id = $1 AND c.approved
        ORDER BY c.created_at
    `, profileID)
}

// ListPending returns every comment awaiting moderation, oldest first.
func (r *PostgresCommentRepository) ListPending(ctx context.Context) ([]models.Comment, error) {
	return r.list(ctx, `
        SELECT c.id, c.profile_id, c.author_id, u.full_name, c.text, c.approved, c.created_at
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE NOT c.approved
        ORDER BY c.created_at
    `)
}

// SetApproved flips the moderation flag on a comment.
func (r *PostgresCommentRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE comments
        SET approved = $2
        WHERE id = $1
    `, id, approved)
	if err != nil {
		return fmt.Errorf("update comment approval: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a comment.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM comments
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresCommentRepository) list(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.ProfileID, &comment.AuthorID, &comment.Author, &comment.Text, &comment.Approved, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

var _ CommentRepository = (*PostgresCommentRepository)(nil)
