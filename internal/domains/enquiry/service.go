package enquiry

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for enquiries.
type Service interface {
	// Create files a booking request against the artist behind slug.
	// Rejected with ErrArtistNotAvailable unless the target is
	// published and has a public contact email.
	Create(ctx context.Context, slug string, req CreateEnquiryRequest) (*EnquiryDTO, error)

	// ListForArtist returns the owner's inbox, newest first.
	ListForArtist(ctx context.Context, artistID uuid.UUID) ([]EnquiryDTO, error)

	// Latest returns the owner's newest enquiries for the dashboard.
	Latest(ctx context.Context, artistID uuid.UUID, limit int) ([]EnquiryDTO, error)

	// CountNew counts unhandled enquiries for the dashboard badge.
	CountNew(ctx context.Context, artistID uuid.UUID) (int, error)

	// UpdateStatus moves an enquiry to replied or archived, owner only.
	UpdateStatus(ctx context.Context, id, artistID uuid.UUID, status Status) (*EnquiryDTO, error)

	// NotifyArtist emails the artist about an enquiry. Used by the
	// worker task and the internal endpoint.
	NotifyArtist(ctx context.Context, enquiryID uuid.UUID) error
}
