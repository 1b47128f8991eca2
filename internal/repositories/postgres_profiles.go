package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meatdealer/backend/internal/db"
	"github.com/meatdealer/backend/internal/models"
)

// PostgresProfileRepository provides PostgreSQL-backed persistence for
// catalog profiles, their likes, and per-viewer like state.
type PostgresProfileRepository struct {
	pool db.Pool
}

// NewPostgresProfileRepository constructs a profile repository backed by PostgreSQL.
func NewPostgresProfileRepository(pool db.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

// Create persists a new profile record.
func (r *PostgresProfileRepository) Create(ctx context.Context, profile models.Profile) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var createdBy any
	if profile.CreatedBy != nil {
		createdBy = profile.CreatedBy.ID
	}

	_, err = conn.Exec(ctx, `
        INSERT INTO profiles (
            id, first_name, last_name, age, net_salary, father_job, mother_job,
            height, body_size, bust_size, skin_color, nationality, residence,
            living_with, instagram, music_tags, place_tags, photos, videos,
            is_available, created_by, created_at, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
    `, profile.ID, profile.FirstName, profile.LastName, profile.Age, profile.NetSalary,
		profile.FatherJob, profile.MotherJob, profile.Height, profile.BodySize, profile.BustSize,
		profile.SkinColor, profile.Nationality, profile.Residence, profile.LivingWith, profile.Instagram,
		profile.MusicTags, profile.PlaceTags, profile.Photos, profile.Videos,
		profile.IsAvailable, createdBy, profile.CreatedAt, profile.UpdatedAt)
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
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

const profileSelect = `
        SELECT p.id, p.first_name, p.last_name, p.age, p.net_salary, p.father_job, p.mother_job,
               p.height, p.body_size, p.bust_size, p.skin_color, p.nationality, p.residence,
               p.living_with, p.instagram, p.music_tags, p.place_tags, p.photos, p.videos,
               p.is_available, p.created_at, p.updated_at,
               (SELECT COUNT(*) FROM profile_likes l WHERE l.profile_id = p.id) AS likes_count,
               EXISTS (SELECT 1 FROM profile_likes l WHERE l.profile_id = p.id AND l.user_id = $1) AS liked_by_viewer,
               u.id, u.username, u.full_name, u.role
        FROM profiles p
        LEFT JOIN users u ON u.id = p.created_by`

// viewerParam binds the viewer's user id, or NULL for anonymous reads. The
// likes column is uuid, so an empty string must not reach the encoder.
func viewerParam(viewerID string) any {
	if viewerID == "" {
		return nil
	}
	return viewerID
}

// Get fetches a single profile with like state for the given viewer.
func (r *PostgresProfileRepository) Get(ctx context.Context, id, viewerID string) (models.Profile, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, profileSelect+`
        WHERE p.id = $2
    `, viewerParam(viewerID), id)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("select profile: %w", err)
	}

	likers, err := r.likers(ctx, conn, []string{profile.ID})
	if err != nil {
		return models.Profile{}, err
	}
	profile.LikedByUsers = likers[profile.ID]

	return profile, nil
}

// List returns the catalog in reverse chronological order, annotated with
// like state for the given viewer.
func (r *PostgresProfileRepository) List(ctx context.Context, viewerID string) ([]models.Profile, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, profileSelect+`
        ORDER BY p.created_at DESC
    `, viewerParam(viewerID))
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var (
		profiles []models.Profile
		ids      []string
	)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
		ids = append(ids, profile.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	rows.Close()

	likers, err := r.likers(ctx, conn, ids)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].LikedByUsers = likers[profiles[i].ID]
	}

	return profiles, nil
}

// Update modifies an existing profile. Ownership and engagement columns are
// not touched here.
func (r *PostgresProfileRepository) Update(ctx context.Context, profile models.Profile) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE profiles
        SET first_name = $2, last_name = $3, age = $4, net_salary = $5, father_job = $6,
            mother_job = $7, height = $8, body_size = $9, bust_size = $10, skin_color = $11,
            nationality = $12, residence = $13, living_with = $14, instagram = $15,
            music_tags = $16, place_tags = $17, photos = $18, videos = $19,
            is_available = $20, updated_at = $21
        WHERE id = $1
    `, profile.ID, profile.FirstName, profile.LastName, profile.Age, profile.NetSalary,
		profile.FatherJob, profile.MotherJob, profile.Height, profile.BodySize, profile.BustSize,
		profile.SkinColor, profile.Nationality, profile.Residence, profile.LivingWith, profile.Instagram,
		profile.MusicTags, profile.PlaceTags, profile.Photos, profile.Videos,
		profile.IsAvailable, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a profile along with its likes and comments (cascade).
func (r *PostgresProfileRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM profiles
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ToggleLike flips the user's like on the profile and returns the profile
// with fresh counters as seen by that user.
func (r *PostgresProfileRepository) ToggleLike(ctx context.Context, profileID, userID string) (models.Profile, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("acquire connection: %w", err)
	}

	tag, err := conn.Exec(ctx, `
        DELETE FROM profile_likes
        WHERE profile_id = $1 AND user_id = $2
    `, profileID, userID)
	if err != nil {
		conn.Release()
		return models.Profile{}, fmt.Errorf("remove like: %w", err)
	}

	if tag.RowsAffected() == 0 {
		_, err = conn.Exec(ctx, `
            INSERT INTO profile_likes (profile_id, user_id, created_at)
            VALUES ($1, $2, NOW())
        `, profileID, userID)
		if err != nil {
			conn.Release()
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return models.Profile{}, ErrNotFound
			}
			return models.Profile{}, fmt.Errorf("insert like: %w", err)
		}
	}

	conn.Release()
	return r.Get(ctx, profileID, userID)
}

// likers loads the liking users for the given profile ids in one query.
func (r *PostgresProfileRepository) likers(ctx context.Context, conn *pgxpool.Conn, ids []string) (map[string][]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := conn.Query(ctx, `
        SELECT l.profile_id, u.id, u.username, u.full_name, u.role
        FROM profile_likes l
        JOIN users u ON u.id = l.user_id
        WHERE l.profile_id = ANY($1)
        ORDER BY l.created_at
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("query profile likers: %w", err)
	}
	defer rows.Close()

	likers := make(map[string][]models.User)
	for rows.Next() {
		var (
			profileID string
			user      models.User
		)
		if err := rows.Scan(&profileID, &user.ID, &user.Username, &user.FullName, &user.Role); err != nil {
			return nil, fmt.Errorf("scan profile liker: %w", err)
		}
		likers[profileID] = append(likers[profileID], user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile likers: %w", err)
	}

	return likers, nil
}

func scanProfile(row pgx.Row) (models.Profile, error) {
	var (
		profile         models.Profile
		creatorID       sql.NullString
		creatorUsername sql.NullString
		creatorFullName sql.NullString
		creatorRole     sql.NullString
	)

	err := row.Scan(
		&profile.ID, &profile.FirstName, &profile.LastName, &profile.Age, &profile.NetSalary,
		&profile.FatherJob, &profile.MotherJob, &profile.Height, &profile.BodySize, &profile.BustSize,
		&profile.SkinColor, &profile.Nationality, &profile.Residence, &profile.LivingWith, &profile.Instagram,
		&profile.MusicTags, &profile.PlaceTags, &profile.Photos, &profile.Videos,
		&profile.IsAvailable, &profile.CreatedAt, &profile.UpdatedAt,
		&profile.LikesCount, &profile.IsLikedByCurrentUser,
		&creatorID, &creatorUsername, &creatorFullName, &creatorRole,
	)
	if err != nil {
		return models.Profile{}, err
	}

	if creatorID.Valid {
		profile.CreatedBy = &models.User{
			ID:       creatorID.String,
			Username: creatorUsername.String,
			FullName: creatorFullName.String,
			Role:     creatorRole.String,
		}
	}

	return profile, nil
}

var _ ProfileRepository = (*PostgresProfileRepository)(nil)
