package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aHaldin/pickmyartist/internal/domains/profile"
)

func price(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// seedDirectory fills the repo with three published artists plus one
// unpublished draft, newest first: Echo, Nova, Vega, then draft Lyra.
func seedDirectory(repo *fakeRepo) (draftID uuid.UUID) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	repo.put(&profile.Profile{
		ID: uuid.New(), DisplayName: "DJ Vega", Slug: "dj-vega",
		City: "Berlin", Genres: []string{"Techno"},
		PriceFrom: price(50), IsPublished: true,
		CreatedAt: base,
	})
	repo.put(&profile.Profile{
		ID: uuid.New(), DisplayName: "Nova Sound", Slug: "nova-sound",
		City: "Hamburg", Genres: []string{"House", "Funk"},
		IsPublished: true,
		CreatedAt:   base.Add(1 * time.Hour),
	})
	repo.put(&profile.Profile{
		ID: uuid.New(), DisplayName: "Echo Collective", Slug: "echo-collective",
		City: "Berlin", Genres: []string{"Jazz"},
		PriceFrom: price(10), IsPublished: true,
		CreatedAt: base.Add(2 * time.Hour),
	})

	draftID = uuid.New()
	repo.put(&profile.Profile{
		ID: draftID, DisplayName: "Lyra", Slug: "lyra",
		Genres:      []string{"Pop"},
		IsPublished: false,
		CreatedAt:   base.Add(3 * time.Hour),
	})
	return draftID
}

func TestDirectory_AnonymousSeesOnlyPublished(t *testing.T) {
	repo := newFakeRepo()
	seedDirectory(repo)
	svc := newTestService(repo, nil)

	resp, err := svc.Directory(context.Background(), nil, profile.DirectoryRequest{})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Total)
	for _, a := range resp.Artists {
		assert.NotEqual(t, "lyra", a.Slug)
	}
}

func TestDirectory_OwnerSeesOwnDraft(t *testing.T) {
	repo := newFakeRepo()
	draftID := seedDirectory(repo)
	svc := newTestService(repo, nil)

	resp, err := svc.Directory(context.Background(), &draftID, profile.DirectoryRequest{})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	slugs := make([]string, 0, len(resp.Artists))
	for _, a := range resp.Artists {
		slugs = append(slugs, a.Slug)
	}
	assert.Contains(t, slugs, "lyra")
}

func TestDirectory_SearchAndGenreCompose(t *testing.T) {
	repo := newFakeRepo()
	seedDirectory(repo)
	svc := newTestService(repo, nil)

	// Search alone: city match
	resp, err := svc.Directory(context.Background(), nil, profile.DirectoryRequest{Search: "berlin"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	// Search AND genre: only the Berlin techno act remains
	resp, err = svc.Directory(context.Background(), nil, profile.DirectoryRequest{
		Search: "berlin",
		Genres: []string{"techno"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "dj-vega", resp.Artists[0].Slug)

	// Genre tags are OR among themselves
	resp, err = svc.Directory(context.Background(), nil, profile.DirectoryRequest{
		Genres: []string{"techno", "jazz"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestDirectory_PriceSortNullsLast(t *testing.T) {
	repo := newFakeRepo()
	seedDirectory(repo)
	svc := newTestService(repo, nil)

	resp, err := svc.Directory(context.Background(), nil, profile.DirectoryRequest{Sort: profile.SortPriceAsc})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	// 10 (Echo), 50 (Vega), no price (Nova) last
	assert.Equal(t, "echo-collective", resp.Artists[0].Slug)
	assert.Equal(t, "dj-vega", resp.Artists[1].Slug)
	assert.Equal(t, "nova-sound", resp.Artists[2].Slug)
	assert.Nil(t, resp.Artists[2].PriceFrom)
}

func TestDirectory_RatingsAssignedBeforeFiltering(t *testing.T) {
	repo := newFakeRepo()
	seedDirectory(repo)
	svc := newTestService(repo, nil)

	// Full list: position ratings 5.0, 4.9, 4.8 (newest first)
	full, err := svc.Directory(context.Background(), nil, profile.DirectoryRequest{})
	require.NoError(t, err)
	require.Equal(t, 3, full.Total)
	assert.InDelta(t, 4.8, full.Artists[0].Rating, 0.001)
	assert.InDelta(t, 4.9, full.Artists[1].Rating, 0.001)
	assert.InDelta(t, 5.0, full.Artists[2].Rating, 0.001)

	// Filtering must not reshuffle ratings: Vega keeps its value
	var vegaRating float64
	for _, a := range full.Artists {
		if a.Slug == "dj-vega" {
			vegaRating = a.Rating
		}
	}

	filtered, err := svc.Directory(context.Background(), nil, profile.DirectoryRequest{Genres: []string{"techno"}})
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Total)
	assert.InDelta(t, vegaRating, filtered.Artists[0].Rating, 0.001)
}

func TestDirectory_RatingSortDescending(t *testing.T) {
	repo := newFakeRepo()
	seedDirectory(repo)
	svc := newTestService(repo, nil)

	resp, err := svc.Directory(context.Background(), nil, profile.DirectoryRequest{Sort: profile.SortRatingDesc})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	for i := 1; i < len(resp.Artists); i++ {
		assert.GreaterOrEqual(t, resp.Artists[i-1].Rating, resp.Artists[i].Rating)
	}
}

func TestDirectory_GenreFacetsDistinctAndSorted(t *testing.T) {
	repo := newFakeRepo()
	seedDirectory(repo)
	svc := newTestService(repo, nil)

	resp, err := svc.Directory(context.Background(), nil, profile.DirectoryRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Funk", "House", "Jazz", "Techno"}, resp.Genres)
}

func TestDirectory_RejectsUnknownSort(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, err := svc.Directory(context.Background(), nil, profile.DirectoryRequest{Sort: "cheapest"})
	assert.Error(t, err)
}
