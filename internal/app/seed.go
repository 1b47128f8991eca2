package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/meatdealer/backend/internal/config"
	"github.com/meatdealer/backend/internal/db"
	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/repositories"
)

// Seed creates an admin account so a fresh deployment can be logged into.
// When the username already exists its password and role are reset instead.
func Seed(ctx context.Context, cfgPath, username, password string) error {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || password == "" {
		return errors.New("seed requires a username and a password")
	}
	if len(password) < 8 {
		return errors.New("seed password must be at least 8 characters")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := repositories.NewPostgresUserRepository(pool)
	now := time.Now().UTC()

	existing, err := users.FindByUsername(ctx, username)
	if err == nil {
		existing.Password = string(hashed)
		existing.Role = models.RoleAdmin
		existing.UpdatedAt = now
		if err := users.Update(ctx, existing); err != nil {
			return fmt.Errorf("update admin user: %w", err)
		}
		fmt.Printf("reset admin account %s\n", username)
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	admin := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		FullName:  "Administrator",
		Password:  string(hashed),
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	fmt.Printf("created admin account %s\n", username)
	return nil
}
