package profile

import "errors"

// Repository-level errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSlugTaken       = errors.New("profile handle already taken")
)

// Service-level errors
var (
	ErrStorageDisabled = errors.New("object storage is not configured")
	ErrInvalidMedia    = errors.New("unsupported image upload")
)
