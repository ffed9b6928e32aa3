package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aHaldin/pickmyartist/internal/domains/enquiry"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) enquiry.Repository {
	return &postgresRepository{pool: pool}
}

const enquiryColumns = `
	id, artist_id, name, email, message,
	event_date, location, budget, status,
	created_at, updated_at
`

func scanEnquiry(row pgx.Row) (*enquiry.Enquiry, error) {
	var e enquiry.Enquiry
	err := row.Scan(
		&e.ID,
		&e.ArtistID,
		&e.Name,
		&e.Email,
		&e.Message,
		&e.EventDate,
		&e.Location,
		&e.Budget,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *postgresRepository) Create(ctx context.Context, e *enquiry.Enquiry) error {
	query := `
		INSERT INTO enquiries (
			id, artist_id, name, email, message,
			event_date, location, budget, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11
		)
	`

	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.ArtistID,
		e.Name,
		e.Email,
		e.Message,
		e.EventDate,
		e.Location,
		e.Budget,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*enquiry.Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = $1`

	e, err := scanEnquiry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, enquiry.ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("find enquiry by id: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) FindForNotification(ctx context.Context, id uuid.UUID) (*enquiry.NotificationView, error) {
	query := `
		SELECT
			e.id, e.artist_id, e.name, e.email, e.message,
			e.event_date, e.location, e.budget, e.status,
			e.created_at, e.updated_at,
			p.display_name, p.email_public
		FROM enquiries e
		JOIN profiles p ON p.id = e.artist_id
		WHERE e.id = $1
	`

	var v enquiry.NotificationView
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.ArtistID,
		&v.Name,
		&v.Email,
		&v.Message,
		&v.EventDate,
		&v.Location,
		&v.Budget,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.ArtistName,
		&v.ArtistEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, enquiry.ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("find enquiry for notification: %w", err)
	}

	return &v, nil
}

func (r *postgresRepository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]*enquiry.Enquiry, error) {
	query := `
		SELECT ` + enquiryColumns + `
		FROM enquiries
		WHERE artist_id = $1
		ORDER BY created_at DESC
	`

	return r.queryMany(ctx, query, artistID)
}

func (r *postgresRepository) LatestByArtist(ctx context.Context, artistID uuid.UUID, limit int) ([]*enquiry.Enquiry, error) {
	query := `
		SELECT ` + enquiryColumns + `
		FROM enquiries
		WHERE artist_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	return r.queryMany(ctx, query, artistID, limit)
}

func (r *postgresRepository) CountNewByArtist(ctx context.Context, artistID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enquiries WHERE artist_id = $1 AND status = $2`,
		artistID, enquiry.StatusNew,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count new enquiries: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id, artistID uuid.UUID, status enquiry.Status) error {
	// artist_id in the WHERE clause is the ownership check: an update
	// against someone else's enquiry simply affects zero rows.
	tag, err := r.pool.Exec(ctx,
		`UPDATE enquiries SET status = $1, updated_at = now() WHERE id = $2 AND artist_id = $3`,
		status, id, artistID,
	)
	if err != nil {
		return fmt.Errorf("update enquiry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return enquiry.ErrEnquiryNotFound
	}
	return nil
}

func (r *postgresRepository) PruneArchived(ctx context.Context, archivedBefore time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM enquiries WHERE status = $1 AND updated_at < $2`,
		enquiry.StatusArchived, archivedBefore,
	)
	if err != nil {
		return 0, fmt.Errorf("prune archived enquiries: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*enquiry.Enquiry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query enquiries: %w", err)
	}
	defer rows.Close()

	var result []*enquiry.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enquiry row: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enquiry rows: %w", err)
	}

	return result, nil
}
