package ui

import (
	"context"

	"github.com/meatdealer/backend/internal/models"
)

// Credentials carries a login attempt.
type Credentials struct {
	Username string
	Password string
}

// AuthService captures the authentication operations consumed by the session
// gate.
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (models.User, error)
	Logout(ctx context.Context) error
}

// ProfileService captures the catalog CRUD operations consumed by the action
// pipeline.
type ProfileService interface {
	List(ctx context.Context) ([]models.Profile, error)
	Add(ctx context.Context, profile models.Profile) (models.Profile, error)
	Update(ctx context.Context, profile models.Profile) (models.Profile, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (models.Profile, error)
}

// PrivateProfileService captures CRUD for private-video profiles.
type PrivateProfileService interface {
	List(ctx context.Context) ([]models.PrivateProfile, error)
	Create(ctx context.Context, profile models.PrivateProfile) (models.PrivateProfile, error)
	Update(ctx context.Context, profile models.PrivateProfile) (models.PrivateProfile, error)
	Delete(ctx context.Context, id string) error
}

// MetaTagHooks is the optional link-sharing side channel. Either hook may be
// nil; absent hooks are skipped.
type MetaTagHooks struct {
	Update func(models.Profile)
	Reset  func()
}

func (h MetaTagHooks) update(profile models.Profile) {
	if h.Update != nil {
		h.Update(profile)
	}
}

func (h MetaTagHooks) reset() {
	if h.Reset != nil {
		h.Reset()
	}
}
