package profile

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/aHaldin/pickmyartist/internal/shared/utils"
)

// ========================================
// EDIT DTOs
// ========================================

// UpdateProfileRequest is the owner-facing edit payload.
// Genre/language entries may arrive comma-joined ("techno, house");
// the service splits and trims them.
type UpdateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	Slug        string   `json:"slug"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Genres      []string `json:"genres"`
	Languages   []string `json:"languages"`
	PriceFrom   *float64 `json:"price_from"`
	Bio         string   `json:"bio"`
	EmailPublic string   `json:"email_public"`
	Phone       string   `json:"phone"`
	Instagram   string   `json:"instagram"`
	Website     string   `json:"website"`
	YouTube     string   `json:"youtube"`
	IsPublished bool     `json:"is_published"`
}

func (r UpdateProfileRequest) Validate() error {
	// Validate the normalized form; is.Email rejects uppercase domains.
	// The stored contact email keeps the owner's original casing.
	r.EmailPublic = utils.NormalizeEmail(r.EmailPublic)
	return validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName,
			validation.Required.Error("display name is required"),
			validation.Length(1, 120),
		),
		validation.Field(&r.Bio,
			validation.Required.Error("bio is required"),
			validation.RuneLength(1, MaxBioLength).Error("bio must be at most 800 characters"),
		),
		validation.Field(&r.PriceFrom,
			validation.When(r.PriceFrom != nil, validation.Min(0.0).Error("price cannot be negative")),
		),
		validation.Field(&r.EmailPublic,
			validation.When(r.EmailPublic != "", is.Email.Error("invalid contact email")),
		),
		validation.Field(&r.Website,
			validation.When(r.Website != "", is.URL.Error("invalid website URL")),
		),
	)
}

// ========================================
// READ DTOs
// ========================================

// ArtistDTO is the public representation (directory card / profile page).
type ArtistDTO struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Slug        string    `json:"slug"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	Genres      []string  `json:"genres"`
	Languages   []string  `json:"languages,omitempty"`
	PriceFrom   *float64  `json:"price_from,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	EmailPublic string    `json:"email_public,omitempty"`
	Instagram   string    `json:"instagram,omitempty"`
	Website     string    `json:"website,omitempty"`
	YouTube     string    `json:"youtube,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	BannerURL   string    `json:"banner_url,omitempty"`
	IsPublished bool      `json:"is_published"`
	Rating      float64   `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnProfileDTO is the owner's view: everything, plus the checklist.
type OwnProfileDTO struct {
	ArtistDTO
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Completion Completion `json:"completion"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ========================================
// DIRECTORY DTOs
// ========================================

// Directory sort modes.
const (
	SortRecommended = "recommended"
	SortPriceAsc    = "price_asc"
	SortRatingDesc  = "rating_desc"
)

type DirectoryRequest struct {
	Search string   `form:"search"`
	Genres []string `form:"genre"`
	Sort   string   `form:"sort"`
}

func (r DirectoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sort,
			validation.In("", SortRecommended, SortPriceAsc, SortRatingDesc).
				Error("sort must be recommended, price_asc or rating_desc"),
		),
	)
}

type DirectoryResponse struct {
	Artists []ArtistDTO `json:"artists"`
	// Genres is the distinct tag list for the filter UI,
	// derived from every visible profile (pre-filter).
	Genres []string `json:"genres"`
	Total  int      `json:"total"`
}

// URLResolver maps a storage object key to a public URL.
// Returns "" when storage is disabled.
type URLResolver func(path string) string

// ToArtistDTO builds the public DTO. rating <= 0 omits the field.
func ToArtistDTO(p *Profile, rating float64, resolve URLResolver) ArtistDTO {
	return ArtistDTO{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Slug:        p.Slug,
		City:        p.City,
		Country:     p.Country,
		Genres:      p.Genres,
		Languages:   p.Languages,
		PriceFrom:   utils.DecimalToFloatPtr(p.PriceFrom),
		Bio:         p.Bio,
		EmailPublic: p.EmailPublic,
		Instagram:   p.Instagram,
		Website:     p.Website,
		YouTube:     p.YouTube,
		AvatarURL:   resolve(p.AvatarPath),
		BannerURL:   resolve(p.BannerPath),
		IsPublished: p.IsPublished,
		Rating:      rating,
		CreatedAt:   p.CreatedAt,
	}
}

// ToOwnProfileDTO builds the owner's view with the completion checklist.
func ToOwnProfileDTO(p *Profile, resolve URLResolver) OwnProfileDTO {
	return OwnProfileDTO{
		ArtistDTO:  ToArtistDTO(p, 0, resolve),
		Email:      p.Email,
		Phone:      p.Phone,
		Completion: p.Completion(),
		UpdatedAt:  p.UpdatedAt,
	}
}
