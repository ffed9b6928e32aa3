package user

import (
	"time"

	"github.com/google/uuid"
)

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the authentication account. The directory identity lives in
// the profile row sharing the same id.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
