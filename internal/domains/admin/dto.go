package admin

import (
	"time"

	"github.com/google/uuid"
)

// StatsDTO is the admin overview payload.
type StatsDTO struct {
	TotalProfiles     int            `json:"total_profiles"`
	PublishedProfiles int            `json:"published_profiles"`
	NewEnquiries      int            `json:"new_enquiries"`
	NewestSignups     []SignupRowDTO `json:"newest_signups"`
}

// SignupRowDTO is one row in the newest-signups list.
type SignupRowDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserRowDTO is one row in the admin user search.
type UserRowDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
