package app

import (
	"context"
	"fmt"

	"github.com/meatdealer/backend/internal/auth"
	"github.com/meatdealer/backend/internal/config"
	"github.com/meatdealer/backend/internal/db"
	"github.com/meatdealer/backend/internal/handlers"
	"github.com/meatdealer/backend/internal/middleware"
	"github.com/meatdealer/backend/internal/repositories"
	"github.com/meatdealer/backend/internal/storage"
)

// buildDependencies constructs the repositories, session manager, rate
// limiter, and media storage the HTTP handlers need. Media storage is
// optional: without a configured bucket, uploads are disabled but the rest
// of the API works.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config) (handlers.Dependencies, error) {
	sessions := auth.NewManager(
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		repositories.NewPostgresSessionStore(pool),
	)

	deps := handlers.Dependencies{
		Users:    repositories.NewPostgresUserRepository(pool),
		Sessions: sessions,
		Profiles: repositories.NewPostgresProfileRepository(pool),
		Comments: repositories.NewPostgresCommentRepository(pool),
		Private:  repositories.NewPostgresPrivateProfileRepository(pool),
		LoginLimiter: middleware.NewIPRateLimiter(
			cfg.LoginRateLimit.Requests,
			cfg.LoginRateLimit.Window,
			cfg.LoginRateLimit.Burst,
			cfg.LoginRateLimit.TTL,
		),
	}

	if cfg.ObjectStore.Bucket != "" {
		media, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return handlers.Dependencies{}, fmt.Errorf("configure media storage: %w", err)
		}
		deps.Media = media
	}

	return deps, nil
}
