package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aHaldin/pickmyartist/internal/domains/admin"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) admin.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CountProfiles(ctx context.Context) (int, int, error) {
	var total, published int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_published) FROM profiles`,
	).Scan(&total, &published)
	if err != nil {
		return 0, 0, fmt.Errorf("count profiles: %w", err)
	}
	return total, published, nil
}

func (r *postgresRepository) CountNewEnquiries(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enquiries WHERE status = 'new'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count new enquiries: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) NewestSignups(ctx context.Context, limit int) ([]admin.SignupRowDTO, error) {
	query := `
		SELECT u.id, u.email, p.display_name, p.slug, u.created_at
		FROM users u
		LEFT JOIN profiles p ON p.id = u.id
		ORDER BY u.created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query newest signups: %w", err)
	}
	defer rows.Close()

	result := make([]admin.SignupRowDTO, 0, limit)
	for rows.Next() {
		var row admin.SignupRowDTO
		var displayName, slug *string
		if err := rows.Scan(&row.ID, &row.Email, &displayName, &slug, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan signup row: %w", err)
		}
		if displayName != nil {
			row.DisplayName = *displayName
		}
		if slug != nil {
			row.Slug = *slug
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signup rows: %w", err)
	}

	return result, nil
}

func (r *postgresRepository) SearchUsers(ctx context.Context, term string, limit int) ([]admin.UserRowDTO, error) {
	query := `
		SELECT u.id, u.email, u.role,
		       COALESCE(p.display_name, ''), COALESCE(p.slug, ''),
		       COALESCE(p.is_published, FALSE), u.created_at
		FROM users u
		LEFT JOIN profiles p ON p.id = u.id
		WHERE $1 = ''
		   OR u.email ILIKE '%' || $1 || '%'
		   OR p.display_name ILIKE '%' || $1 || '%'
		   OR p.slug ILIKE '%' || $1 || '%'
		ORDER BY u.created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	result := make([]admin.UserRowDTO, 0, limit)
	for rows.Next() {
		var row admin.UserRowDTO
		err := rows.Scan(
			&row.ID,
			&row.Email,
			&row.Role,
			&row.DisplayName,
			&row.Slug,
			&row.IsPublished,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return result, nil
}
