package enquiry

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/aHaldin/pickmyartist/internal/shared/utils"
)

// CreateEnquiryRequest is the anonymous booking form payload.
type CreateEnquiryRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Message   string   `json:"message"`
	EventDate string   `json:"event_date,omitempty"` // YYYY-MM-DD
	Location  string   `json:"location,omitempty"`
	Budget    *float64 `json:"budget,omitempty"`
}

func (r CreateEnquiryRequest) Validate() error {
	// Validate the normalized form; is.Email rejects uppercase domains.
	// The stored address keeps the booker's original casing.
	r.Email = utils.NormalizeEmail(r.Email)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 120),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, 4000),
		),
		validation.Field(&r.EventDate,
			validation.When(r.EventDate != "", validation.Date("2006-01-02").Error("event date must be YYYY-MM-DD")),
		),
		validation.Field(&r.Budget,
			validation.When(r.Budget != nil, validation.Min(0.0).Error("budget cannot be negative")),
		),
	)
}

// UpdateStatusRequest moves an enquiry through its lifecycle.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(StatusReplied, StatusArchived).
				Error("status must be replied or archived"),
		),
	)
}

// EnquiryDTO is the owner-facing representation.
type EnquiryDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	EventDate *time.Time `json:"event_date,omitempty"`
	Location  string     `json:"location,omitempty"`
	Budget    *float64   `json:"budget,omitempty"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToDTO(e *Enquiry) EnquiryDTO {
	return EnquiryDTO{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Message:   e.Message,
		EventDate: e.EventDate,
		Location:  e.Location,
		Budget:    utils.DecimalToFloatPtr(e.Budget),
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
}

func ToDTOs(list []*Enquiry) []EnquiryDTO {
	out := make([]EnquiryDTO, 0, len(list))
	for _, e := range list {
		out = append(out, ToDTO(e))
	}
	return out
}
