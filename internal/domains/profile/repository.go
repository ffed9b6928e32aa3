package profile

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for profiles.
type Repository interface {
	// FindByID loads a profile by owner ID. Returns ErrProfileNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// FindBySlug loads a profile by handle regardless of publish state;
	// visibility is enforced at the service layer.
	FindBySlug(ctx context.Context, slug string) (*Profile, error)

	// ExistsBySlug reports whether any profile holds the handle.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// SlugInUse reports whether another profile holds the handle.
	SlugInUse(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Upsert writes the full row keyed by ID. A handle collision maps
	// to ErrSlugTaken.
	Upsert(ctx context.Context, p *Profile) error

	// UpsertIdentity refreshes id+email only, leaving the rest of the
	// row untouched. Used on every login/session restore.
	UpsertIdentity(ctx context.Context, id uuid.UUID, email string) error

	// ListVisible returns published profiles plus the viewer's own row,
	// newest first. viewerID may be nil for anonymous callers.
	ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]*Profile, error)

	// UpdateAvatarPath / UpdateBannerPath persist new media object keys.
	UpdateAvatarPath(ctx context.Context, id uuid.UUID, path string) error
	UpdateBannerPath(ctx context.Context, id uuid.UUID, path string) error
}
