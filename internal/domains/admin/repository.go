package admin

import "context"

// Repository aggregates cross-domain reads for the admin screens.
type Repository interface {
	CountProfiles(ctx context.Context) (total, published int, err error)
	CountNewEnquiries(ctx context.Context) (int, error)
	NewestSignups(ctx context.Context, limit int) ([]SignupRowDTO, error)

	// SearchUsers matches the term against email, display name and
	// handle, case-insensitively. An empty term lists everyone.
	SearchUsers(ctx context.Context, term string, limit int) ([]UserRowDTO, error)
}

// Service is the business logic contract for the admin screens.
type Service interface {
	Stats(ctx context.Context) (*StatsDTO, error)
	SearchUsers(ctx context.Context, term string) ([]UserRowDTO, error)
}
