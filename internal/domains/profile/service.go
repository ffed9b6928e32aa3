package profile

import (
	"context"

	"github.com/google/uuid"
)

// MediaKind selects the upload slot on a profile.
type MediaKind string

const (
	MediaAvatar MediaKind = "avatar"
	MediaBanner MediaKind = "banner"
)

// Service is the business logic contract for profiles.
type Service interface {
	// EnsureProfile provisions the directory row for an account:
	// creates it with a unique handle on first sight, refreshes the
	// email otherwise. Safe to call on every login.
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*Profile, error)

	// GetOwn returns the owner's profile with the completion checklist.
	GetOwn(ctx context.Context, userID uuid.UUID) (*OwnProfileDTO, error)

	// GetOwnWithRetry is GetOwn with a single short retry, covering the
	// window right after EnsureProfile where a read may miss the write.
	GetOwnWithRetry(ctx context.Context, userID uuid.UUID) (*OwnProfileDTO, error)

	// GetBySlug returns a public profile. Unpublished rows are only
	// visible to their owner.
	GetBySlug(ctx context.Context, slug string, viewerID *uuid.UUID) (*ArtistDTO, error)

	// Update saves the owner's edits, normalizing tags and the handle.
	Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*OwnProfileDTO, error)

	// Directory lists visible artists with search, tag filter and sort.
	Directory(ctx context.Context, viewerID *uuid.UUID, req DirectoryRequest) (*DirectoryResponse, error)

	// UploadMedia validates, processes and stores an avatar or banner.
	UploadMedia(ctx context.Context, userID uuid.UUID, kind MediaKind, data []byte) (*OwnProfileDTO, error)

	// ResolveURL maps a storage key to a public URL ("" when storage
	// is disabled).
	ResolveURL(path string) string
}

// MediaStore is the slice of object storage the profile service needs.
// *storage.MinIOStorage satisfies it; tests use an in-memory fake.
type MediaStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
