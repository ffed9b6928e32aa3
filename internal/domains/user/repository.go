package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for accounts.
type Repository interface {
	// Create inserts a new account. Returns ErrEmailAlreadyExists on a
	// duplicate email.
	Create(ctx context.Context, u *User) error

	// FindByEmail loads an account for login. Returns ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID loads an account. Returns ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
