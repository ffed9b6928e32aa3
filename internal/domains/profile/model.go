package profile

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile is one performer's directory entry. The row is keyed by the
// owning user's ID (one profile per account).
type Profile struct {
	ID          uuid.UUID
	Email       string // account email, kept in sync on login
	DisplayName string
	Slug        string
	City        string
	Country     string
	Genres      []string
	Languages   []string
	PriceFrom   *decimal.Decimal // starting price, nil = not set
	Bio         string
	EmailPublic string // public contact email, empty = bookings closed
	Phone       string
	Instagram   string
	Website     string
	YouTube     string
	AvatarPath  string // object key in storage, not a URL
	BannerPath  string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MinBioLength is the bio length, in characters, counted as "complete".
const MinBioLength = 120

// MaxBioLength caps the bio, in characters, on save.
const MaxBioLength = 800

// ========================================
// COMPLETENESS CHECKLIST
// ========================================

// Completion is the profile readiness checklist. It is computed on read
// and never persisted.
type Completion struct {
	Count   int    `json:"count"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	Status  string `json:"status"`
	Helper  string `json:"helper,omitempty"`
}

type completionCheck struct {
	done   bool
	helper string
}

// Completion evaluates the six-point checklist:
// display name, handle, location, genres, price, and a substantial bio.
func (p *Profile) Completion() Completion {
	checks := []completionCheck{
		{p.DisplayName != "", "Add a display name"},
		{p.Slug != "", "Choose a profile handle"},
		{p.City != "" || p.Country != "", "Add your city or country"},
		{len(p.Genres) > 0, "Add at least one genre"},
		{p.PriceFrom != nil, "Set your starting price"},
		{utf8.RuneCountInString(p.Bio) >= MinBioLength, "Write a bio of at least 120 characters"},
	}

	count := 0
	helper := ""
	for _, check := range checks {
		if check.done {
			count++
		} else if helper == "" {
			// Surface the first missing item as the next step
			helper = check.helper
		}
	}

	total := len(checks)
	status := "Incomplete"
	switch {
	case count == total:
		status = "Complete"
	case count >= 4:
		status = "Almost ready"
	}

	return Completion{
		Count:   count,
		Total:   total,
		Percent: int(math.Round(float64(count) / float64(total) * 100)),
		Status:  status,
		Helper:  helper,
	}
}

// MatchesSearch reports whether the profile matches a case-insensitive
// substring query over name, city, country and joined genres.
func (p *Profile) MatchesSearch(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		p.DisplayName,
		p.City,
		p.Country,
		strings.Join(p.Genres, " "),
	}, " "))
	return strings.Contains(haystack, query)
}

// HasAnyGenre reports whether the profile carries at least one of the
// given genre tags (OR semantics, case-insensitive).
func (p *Profile) HasAnyGenre(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		for _, g := range p.Genres {
			if strings.EqualFold(g, tag) {
				return true
			}
		}
	}
	return false
}
