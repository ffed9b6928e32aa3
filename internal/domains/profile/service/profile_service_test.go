package service

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/storage"
)

func newTestService(repo profile.Repository, store profile.MediaStore) profile.Service {
	return NewProfileService(repo, store, storage.NewImageProcessor())
}

func TestEnsureProfile_CreatesRowFromEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	p, err := svc.EnsureProfile(context.Background(), userID, "dj.nova@example.com")
	require.NoError(t, err)

	assert.Equal(t, userID, p.ID)
	assert.Equal(t, "dj-nova", p.Slug)
	assert.Equal(t, "dj.nova", p.DisplayName)
	assert.False(t, p.IsPublished)
	assert.NotNil(t, p.Genres)
	assert.Empty(t, p.Genres)
}

func TestEnsureProfile_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	first, err := svc.EnsureProfile(context.Background(), userID, "dj.nova@example.com")
	require.NoError(t, err)

	// Second call must not replace the row, only refresh the email
	second, err := svc.EnsureProfile(context.Background(), userID, "new.address@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.Slug, second.Slug)

	stored, err := repo.FindByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "new.address@example.com", stored.Email)
	assert.Equal(t, first.Slug, stored.Slug)
}

func TestEnsureProfile_FallbackHandle(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	// Local part slugs to nothing, so the handle falls back
	p, err := svc.EnsureProfile(context.Background(), uuid.New(), "!!!@example.com")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.Slug, "performer-"), "got slug %q", p.Slug)
	assert.Equal(t, "Performer", p.DisplayName)
}

func TestEnsureProfile_CollisionGetsSuffix(t *testing.T) {
	repo := newFakeRepo()
	repo.put(&profile.Profile{ID: uuid.New(), Slug: "dj-nova"})
	svc := newTestService(repo, nil)

	p, err := svc.EnsureProfile(context.Background(), uuid.New(), "dj.nova@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, "dj-nova", p.Slug)
	assert.True(t, strings.HasPrefix(p.Slug, "dj-nova-"), "got slug %q", p.Slug)
}

func TestGetBySlug_VisibilityRules(t *testing.T) {
	repo := newFakeRepo()
	ownerID := uuid.New()
	strangerID := uuid.New()
	repo.put(&profile.Profile{ID: ownerID, Slug: "hidden-artist", IsPublished: false})
	svc := newTestService(repo, nil)
	ctx := context.Background()

	// Anonymous viewers never see unpublished profiles
	_, err := svc.GetBySlug(ctx, "hidden-artist", nil)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	// Neither do other signed in users
	_, err = svc.GetBySlug(ctx, "hidden-artist", &strangerID)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	// The owner sees their own draft
	dto, err := svc.GetBySlug(ctx, "hidden-artist", &ownerID)
	require.NoError(t, err)
	assert.Equal(t, "hidden-artist", dto.Slug)
}

func validUpdateRequest() profile.UpdateProfileRequest {
	return profile.UpdateProfileRequest{
		DisplayName: "DJ Nova",
		Bio:         strings.Repeat("x", 150),
	}
}

func TestUpdate_DerivesSlugFromDisplayName(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	req := validUpdateRequest()
	dto, err := svc.Update(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, "dj-nova", dto.Slug)
}

func TestUpdate_SlugConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.put(&profile.Profile{ID: uuid.New(), Slug: "taken"})
	svc := newTestService(repo, nil)

	req := validUpdateRequest()
	req.Slug = "Taken"

	_, err := svc.Update(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, profile.ErrSlugTaken)
}

func TestUpdate_KeepingOwnSlugIsNotAConflict(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	repo.put(&profile.Profile{ID: userID, Slug: "dj-nova", Email: "dj@example.com"})
	svc := newTestService(repo, nil)

	req := validUpdateRequest()
	req.Slug = "dj-nova"

	dto, err := svc.Update(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, "dj-nova", dto.Slug)
}

func TestUpdate_NormalizesTagsAndPreservesMedia(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	created := time.Now().Add(-24 * time.Hour)
	repo.put(&profile.Profile{
		ID:         userID,
		Slug:       "dj-nova",
		Email:      "dj@example.com",
		AvatarPath: "avatars/old.jpg",
		BannerPath: "banners/old.jpg",
		CreatedAt:  created,
	})
	svc := newTestService(repo, nil)

	req := validUpdateRequest()
	req.Genres = []string{"techno, house", " funk "}
	req.Languages = []string{"en,de"}

	dto, err := svc.Update(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"techno", "house", "funk"}, dto.Genres)
	assert.Equal(t, []string{"en", "de"}, dto.Languages)
	assert.Equal(t, "dj@example.com", dto.Email)

	stored, err := repo.FindByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "avatars/old.jpg", stored.AvatarPath)
	assert.Equal(t, "banners/old.jpg", stored.BannerPath)
	assert.Equal(t, created.Unix(), stored.CreatedAt.Unix())
}

func TestUpdate_CapsBio(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	req := validUpdateRequest()
	req.Bio = strings.Repeat("y", profile.MaxBioLength)

	dto, err := svc.Update(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Len(t, dto.Bio, profile.MaxBioLength)
}

func TestUpdate_BioLimitCountsCharacters(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	// 800 CJK characters are well past 800 bytes but still a legal bio
	req := validUpdateRequest()
	req.Bio = strings.Repeat("音", profile.MaxBioLength)

	dto, err := svc.Update(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, profile.MaxBioLength, utf8.RuneCountInString(dto.Bio))
}

func TestUpdate_AcceptsMixedCaseContactEmail(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	req := validUpdateRequest()
	req.EmailPublic = "Bookings@DJNova.Example"

	// Validation runs case-insensitively; the stored address keeps
	// the owner's casing
	dto, err := svc.Update(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, "Bookings@DJNova.Example", dto.EmailPublic)
}

func TestUpdate_RejectsInvalidInput(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, err := svc.Update(context.Background(), uuid.New(), profile.UpdateProfileRequest{})
	assert.Error(t, err)
}

// testJPEG renders a small valid JPEG for upload tests.
func testJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestUploadMedia_StorageDisabled(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, err := svc.UploadMedia(context.Background(), uuid.New(), profile.MediaAvatar, testJPEG(t))
	assert.ErrorIs(t, err, profile.ErrStorageDisabled)
}

func TestUploadMedia_RequiresExistingProfile(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeStore())

	_, err := svc.UploadMedia(context.Background(), uuid.New(), profile.MediaAvatar, testJPEG(t))
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestUploadMedia_AvatarStoredAndOldDeleted(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	userID := uuid.New()
	repo.put(&profile.Profile{ID: userID, Slug: "dj-nova", AvatarPath: "avatars/old.jpg"})
	svc := newTestService(repo, store)

	dto, err := svc.UploadMedia(context.Background(), userID, profile.MediaAvatar, testJPEG(t))
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.AvatarPath, "avatars/"), "got key %q", stored.AvatarPath)
	assert.True(t, strings.HasSuffix(stored.AvatarPath, ".jpg"), "got key %q", stored.AvatarPath)
	assert.Contains(t, dto.AvatarURL, stored.AvatarPath)

	// The replaced object is cleaned up
	assert.Equal(t, []string{"avatars/old.jpg"}, store.deleted)
}

func TestUploadMedia_RejectsGarbage(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	repo.put(&profile.Profile{ID: userID, Slug: "dj-nova"})
	svc := newTestService(repo, newFakeStore())

	_, err := svc.UploadMedia(context.Background(), userID, profile.MediaAvatar, []byte("not an image"))
	assert.ErrorIs(t, err, profile.ErrInvalidMedia)
}
