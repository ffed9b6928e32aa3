package user

import "context"

// Service is the business logic contract for accounts.
type Service interface {
	// Register creates an account and returns a signed in session.
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)

	// Login verifies credentials and returns a token pair.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)

	// GetByID loads an account.
	GetByID(ctx context.Context, id string) (*UserDTO, error)
}
