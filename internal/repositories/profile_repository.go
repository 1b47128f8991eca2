package repositories

import (
	"context"

	"github.com/meatdealer/backend/internal/models"
)

// ProfileRepository defines data access for catalog profiles. Read operations
// take the viewer's user id so like state can be reported per viewer.
type ProfileRepository interface {
	Create(ctx context.Context, profile models.Profile) error
	Get(ctx context.Context, id, viewerID string) (models.Profile, error)
	List(ctx context.Context, viewerID string) ([]models.Profile, error)
	Update(ctx context.Context, profile models.Profile) error
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, profileID, userID string) (models.Profile, error)
}
