package enquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the data access contract for enquiries.
type Repository interface {
	Create(ctx context.Context, e *Enquiry) error

	// FindByID loads one enquiry. Returns ErrEnquiryNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Enquiry, error)

	// FindForNotification loads the enquiry joined with the artist's
	// display name and public email.
	FindForNotification(ctx context.Context, id uuid.UUID) (*NotificationView, error)

	// ListByArtist returns all enquiries for one artist, newest first.
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]*Enquiry, error)

	// LatestByArtist returns the newest enquiries, capped at limit.
	LatestByArtist(ctx context.Context, artistID uuid.UUID, limit int) ([]*Enquiry, error)

	// CountNewByArtist counts enquiries still in status "new".
	CountNewByArtist(ctx context.Context, artistID uuid.UUID) (int, error)

	// UpdateStatus changes the status, scoped to the owning artist so
	// one artist can never touch another's enquiries.
	UpdateStatus(ctx context.Context, id, artistID uuid.UUID, status Status) error

	// PruneArchived deletes enquiries archived before the cutoff.
	// Returns the number of rows removed.
	PruneArchived(ctx context.Context, archivedBefore time.Time) (int64, error)
}
