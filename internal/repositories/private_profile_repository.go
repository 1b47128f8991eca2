package repositories

import (
	"context"

	"github.com/meatdealer/backend/internal/models"
)

// PrivateProfileRepository defines data access for private-video profiles.
type PrivateProfileRepository interface {
	Create(ctx context.Context, profile models.PrivateProfile) error
	Get(ctx context.Context, id string) (models.PrivateProfile, error)
	List(ctx context.Context) ([]models.PrivateProfile, error)
	Update(ctx context.Context, profile models.PrivateProfile) error
	Delete(ctx context.Context, id string) error
}
