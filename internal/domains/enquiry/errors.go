package enquiry

import "errors"

// Repository-level errors
var (
	ErrEnquiryNotFound = errors.New("enquiry not found")
)

// Service-level errors
var (
	// ErrArtistNotAvailable: target is unpublished or has closed bookings
	ErrArtistNotAvailable = errors.New("artist is not accepting enquiries")

	// ErrArtistEmailUnavailable: notification requested but the artist
	// has no public contact email
	ErrArtistEmailUnavailable = errors.New("artist has no public email")

	ErrInvalidStatus      = errors.New("invalid enquiry status")
	ErrInvalidTransition  = errors.New("enquiry status cannot change that way")
	ErrEmailNotConfigured = errors.New("email provider is not configured")
)
