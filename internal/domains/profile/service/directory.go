package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/aHaldin/pickmyartist/internal/domains/profile"
)

// ratedProfile pairs a profile with its display rating.
type ratedProfile struct {
	p      *profile.Profile
	rating float64
}

// Directory serves the artist listing: visibility at the repository,
// search/tag filtering and sorting here. The visible set is small
// enough (a curated directory, not a feed) that in-process filtering
// keeps the SQL trivial.
func (s *profileService) Directory(ctx context.Context, viewerID *uuid.UUID, req profile.DirectoryRequest) (*profile.DirectoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. FETCH: published + own, newest first ("recommended" order)
	visible, err := s.repo.ListVisible(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// 2. ASSIGN DISPLAY RATINGS from the pre-filter list position, so
	// a card keeps its rating no matter which filters are active.
	rated := make([]ratedProfile, len(visible))
	for i, p := range visible {
		rated[i] = ratedProfile{p: p, rating: syntheticRating(i)}
	}

	// 3. FACET LIST: distinct genres across everything visible
	genreFacets := collectGenres(visible)

	// 4. FILTER: substring search AND genre tags (tags are OR inside)
	filtered := make([]ratedProfile, 0, len(rated))
	for _, rp := range rated {
		if rp.p.MatchesSearch(req.Search) && rp.p.HasAnyGenre(req.Genres) {
			filtered = append(filtered, rp)
		}
	}

	// 5. SORT. SliceStable keeps the recommended order among ties.
	switch req.Sort {
	case profile.SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := filtered[i].p.PriceFrom, filtered[j].p.PriceFrom
			// Profiles without a price sink to the end
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.LessThan(*b)
		})
	case profile.SortRatingDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].rating > filtered[j].rating
		})
	}

	// 6. BUILD DTOs
	artists := make([]profile.ArtistDTO, 0, len(filtered))
	for _, rp := range filtered {
		artists = append(artists, profile.ToArtistDTO(rp.p, rp.rating, s.ResolveURL))
	}

	return &profile.DirectoryResponse{
		Artists: artists,
		Genres:  genreFacets,
		Total:   len(artists),
	}, nil
}

// syntheticRating is a deterministic placeholder (4.8 / 4.9 / 5.0
// cycling by position) until real reviews exist. Display-only.
func syntheticRating(index int) float64 {
	return 4.8 + float64(index%3)*0.1
}

func collectGenres(profiles []*profile.Profile) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range profiles {
		for _, g := range p.Genres {
			key := strings.ToLower(g)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}
