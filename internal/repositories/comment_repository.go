package repositories

import (
	"context"

	"github.com/meatdealer/backend/internal/models"
)

// CommentRepository defines data access for profile comments and their
// moderation workflow.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	ListApproved(ctx context.Context, profileID string) ([]models.Comment, error)
	ListPending(ctx context.Context) ([]models.Comment, error)
	SetApproved(ctx context.Context, commentID string, approved bool) error
	Delete(ctx context.Context, commentID string) error
}
