package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/meatdealer/backend/internal/db"
	"github.com/meatdealer/backend/internal/models"
)

// PostgresPrivateProfileRepository provides PostgreSQL-backed persistence
// for the restricted private-profile catalog.
type PostgresPrivateProfileRepository struct {
	pool db.Pool
}

// NewPostgresPrivateProfileRepository constructs a private-profile repository backed by PostgreSQL.
func NewPostgresPrivateProfileRepository(pool db.Pool) *PostgresPrivateProfileRepository {
	return &PostgresPrivateProfileRepository{pool: pool}
}

// Create persists a new private profile.
func (r *PostgresPrivateProfileRepository) Create(ctx context.Context, profile models.PrivateProfile) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO private_profiles (id, name, description, photos, videos, owner_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, profile.ID, profile.Name, profile.Description, profile.Photos, profile.Videos,
		profile.OwnerID, profile.CreatedAt, profile.UpdatedAt)
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
		return fmt.Errorf("insert private profile: %w", err)
	}

	return nil
}

// Get fetches a single private profile by id.
func (r *PostgresPrivateProfileRepository) Get(ctx context.Context, id string) (models.PrivateProfile, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.PrivateProfile{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var profile models.PrivateProfile
	err = conn.QueryRow(ctx, `
        SELECT id, name, description, photos, videos, owner_id, created_at, updated_at
        FROM private_profiles
        WHERE id = $1
    `, id).Scan(&profile.ID, &profile.Name, &profile.Description, &profile.Photos, &profile.Videos,
		&profile.OwnerID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PrivateProfile{}, ErrNotFound
		}
		return models.PrivateProfile{}, fmt.Errorf("select private profile: %w", err)
	}

	return profile, nil
}

// List returns every private profile, newest first.
func (r *PostgresPrivateProfileRepository) List(ctx context.Context) ([]models.PrivateProfile, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, name, description, photos, videos, owner_id, created_at, updated_at
        FROM private_profiles
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("query private profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.PrivateProfile
	for rows.Next() {
		var profile models.PrivateProfile
		if err := rows.Scan(&profile.ID, &profile.Name, &profile.Description, &profile.Photos, &profile.Videos,
			&profile.OwnerID, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan private profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate private profiles: %w", err)
	}

	return profiles, nil
}

// Update modifies an existing private profile. Ownership is not touched here.
func (r *PostgresPrivateProfileRepository) Update(ctx context.Context, profile models.PrivateProfile) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE private_profiles
        SET name = $2, description = $3, photos = $4, videos = $5, updated_at = $6
        WHERE id = $1
    `, profile.ID, profile.Name, profile.Description, profile.Photos, profile.Videos, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update private profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a private profile.
func (r *PostgresPrivateProfileRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM private_profiles
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("delete private profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

var _ PrivateProfileRepository = (*PostgresPrivateProfileRepository)(nil)
