package enquiry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status lifecycle: new -> replied | archived.
type Status string

const (
	StatusNew      Status = "new"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusReplied, StatusArchived:
		return true
	}
	return false
}

// Enquiry is a booking request sent to a published artist.
// The sender is anonymous - no account required.
type Enquiry struct {
	ID        uuid.UUID
	ArtistID  uuid.UUID // profile the enquiry targets
	Name      string
	Email     string
	Message   string
	EventDate *time.Time
	Location  string
	Budget    *decimal.Decimal
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotificationView is the enquiry joined with the bits of the artist
// row the email template needs.
type NotificationView struct {
	Enquiry
	ArtistName  string
	ArtistEmail string // artist's public contact email, may be empty
}
