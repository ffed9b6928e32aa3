package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	"github.com/aHaldin/pickmyartist/pkg/cache"
)

// postgresRepository is the concrete profile.Repository.
// The struct stays private; callers depend on the interface.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) profile.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const profileColumns = `
	id, email, display_name, slug, city, country,
	genres, languages, price_from, bio,
	email_public, phone, instagram, website, youtube,
	avatar_path, banner_path, is_published,
	created_at, updated_at
`

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.DisplayName,
		&p.Slug,
		&p.City,
		&p.Country,
		&p.Genres,
		&p.Languages,
		&p.PriceFrom,
		&p.Bio,
		&p.EmailPublic,
		&p.Phone,
		&p.Instagram,
		&p.Website,
		&p.YouTube,
		&p.AvatarPath,
		&p.BannerPath,
		&p.IsPublished,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile by id: %w", err)
	}

	return p, nil
}

// FindBySlug uses the cache-aside pattern: the public profile page is
// the hottest read path in the app.
func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*profile.Profile, error) {
	cacheKey := slugCacheKey(slug)

	var cached profile.Profile
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE slug = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile by slug: %w", err)
	}

	// Ignore cache set errors - a cold cache must not fail the request
	_ = r.cache.Set(ctx, cacheKey, p, 10*time.Minute)

	return p, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) SlugInUse(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug in use: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, p *profile.Profile) error {
	// Remember the previous handle so its cache entry can be dropped
	// when the owner renames.
	oldSlug, _ := r.currentSlug(ctx, p.ID)

	query := `
		INSERT INTO profiles (
			id, email, display_name, slug, city, country,
			genres, languages, price_from, bio,
			email_public, phone, instagram, website, youtube,
			is_published, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17, $18
		)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			slug = EXCLUDED.slug,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			genres = EXCLUDED.genres,
			languages = EXCLUDED.languages,
			price_from = EXCLUDED.price_from,
			bio = EXCLUDED.bio,
			email_public = EXCLUDED.email_public,
			phone = EXCLUDED.phone,
			instagram = EXCLUDED.instagram,
			website = EXCLUDED.website,
			youtube = EXCLUDED.youtube,
			is_published = EXCLUDED.is_published,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Email,
		p.DisplayName,
		p.Slug,
		p.City,
		p.Country,
		p.Genres,
		p.Languages,
		p.PriceFrom,
		p.Bio,
		p.EmailPublic,
		p.Phone,
		p.Instagram,
		p.Website,
		p.YouTube,
		p.IsPublished,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		// 23505 = unique_violation. The only unique constraint besides
		// the primary key is the handle, so map it to ErrSlugTaken.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return profile.ErrSlugTaken
		}
		return fmt.Errorf("upsert profile: %w", err)
	}

	r.invalidateSlugs(ctx, oldSlug, p.Slug)
	return nil
}

func (r *postgresRepository) UpsertIdentity(ctx context.Context, id uuid.UUID, email string) error {
	query := `
		INSERT INTO profiles (id, email)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, id, email); err != nil {
		return fmt.Errorf("upsert profile identity: %w", err)
	}

	if slug, err := r.currentSlug(ctx, id); err == nil {
		r.invalidateSlugs(ctx, slug)
	}
	return nil
}

func (r *postgresRepository) ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]*profile.Profile, error) {
	viewer := uuid.Nil
	if viewerID != nil {
		viewer = *viewerID
	}

	// Published rows plus the viewer's own, newest first. The fetch
	// order doubles as the "recommended" sort.
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE is_published = TRUE OR id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, viewer)
	if err != nil {
		return nil, fmt.Errorf("list visible profiles: %w", err)
	}
	defer rows.Close()

	var result []*profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}

	return result, nil
}

func (r *postgresRepository) UpdateAvatarPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.updateMediaPath(ctx, id, "avatar_path", path)
}

func (r *postgresRepository) UpdateBannerPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.updateMediaPath(ctx, id, "banner_path", path)
}

func (r *postgresRepository) updateMediaPath(ctx context.Context, id uuid.UUID, column, path string) error {
	query := fmt.Sprintf(
		`UPDATE profiles SET %s = $1, updated_at = now() WHERE id = $2`, column,
	)

	tag, err := r.pool.Exec(ctx, query, path, id)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}

	if slug, err := r.currentSlug(ctx, id); err == nil {
		r.invalidateSlugs(ctx, slug)
	}
	return nil
}

// ========================================
// CACHE HELPERS
// ========================================

func slugCacheKey(slug string) string {
	return fmt.Sprintf("profile:slug:%s", slug)
}

func (r *postgresRepository) currentSlug(ctx context.Context, id uuid.UUID) (string, error) {
	var slug string
	err := r.pool.QueryRow(ctx, `SELECT slug FROM profiles WHERE id = $1`, id).Scan(&slug)
	return slug, err
}

func (r *postgresRepository) invalidateSlugs(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, slugCacheKey(s))
		}
	}
	// Stale-cache cleanup is best effort
	_ = r.cache.Delete(ctx, keys...)
}
