package handlers

import (
	"context"
	"io"

	"github.com/meatdealer/backend/internal/models"
)

// UserStore captures the persistence operations required by the HTTP handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id string) error
}

// SessionManager issues, validates, and revokes authentication tokens.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error)
	Validate(ctx context.Context, accessToken string) (string, error)
	Revoke(ctx context.Context, tokens ...string)
}

// ProfileStore captures persistence for the public profile catalog.
type ProfileStore interface {
	Create(ctx context.Context, profile models.Profile) error
	Get(ctx context.Context, id, viewerID string) (models.Profile, error)
	List(ctx context.Context, viewerID string) ([]models.Profile, error)
	Update(ctx context.Context, profile models.Profile) error
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, profileID, userID string) (models.Profile, error)
}

// CommentStore captures persistence for profile comments and moderation.
type CommentStore interface {
	Create(ctx context.Context, comment models.Comment) error
	ListApproved(ctx context.Context, profileID string) ([]models.Comment, error)
	ListPending(ctx context.Context) ([]models.Comment, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

// PrivateProfileStore captures persistence for the restricted catalog.
type PrivateProfileStore interface {
	Create(ctx context.Context, profile models.PrivateProfile) error
	Get(ctx context.Context, id string) (models.PrivateProfile, error)
	List(ctx context.Context) ([]models.PrivateProfile, error)
	Update(ctx context.Context, profile models.PrivateProfile) error
	Delete(ctx context.Context, id string) error
}

// MediaStorage persists uploaded media and returns its public URL.
type MediaStorage interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
