package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/storage"
	"github.com/aHaldin/pickmyartist/internal/shared/utils"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

// Provisioning constants for first-login profiles.
const (
	slugAttempts      = 5
	fallbackNamePart  = "Performer"
	provisionRetryGap = 300 * time.Millisecond
)

// profileService implements profile.Service.
type profileService struct {
	repo      profile.Repository
	store     profile.MediaStore // nil when object storage is not configured
	processor *storage.ImageProcessor
}

func NewProfileService(repo profile.Repository, store profile.MediaStore, processor *storage.ImageProcessor) profile.Service {
	return &profileService{
		repo:      repo,
		store:     store,
		processor: processor,
	}
}

// ========================================
// PROVISIONING
// ========================================

// EnsureProfile guarantees the account has a directory row.
// Called on register, login and session restore, so it must be
// idempotent and cheap for the common "row already exists" case.
func (s *profileService) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*profile.Profile, error) {
	// 1. FAST PATH: row exists - just refresh the account email
	existing, err := s.repo.FindByID(ctx, userID)
	if err == nil {
		if err := s.repo.UpsertIdentity(ctx, userID, email); err != nil {
			return nil, fmt.Errorf("refresh profile identity: %w", err)
		}
		return existing, nil
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, err
	}

	// 2. DERIVE THE HANDLE from the email local part.
	// An all-symbol local part slugs to "" and falls back to a
	// random performer-N handle.
	local := emailLocalPart(email)
	base := utils.Slugify(local)
	if base == "" {
		base = fmt.Sprintf("performer-%d", rand.Intn(10000))
	}

	// 3. PROBE FOR A FREE HANDLE: up to 5 attempts, random numeric
	// suffix on collision. Exhaustion keeps the last candidate and
	// lets the unique constraint below have the final word.
	slug := base
	for attempt := 0; attempt < slugAttempts; attempt++ {
		taken, err := s.repo.ExistsBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("probe slug %q: %w", slug, err)
		}
		if !taken {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, 1000+rand.Intn(9000))
	}

	// 4. CREATE THE ROW, unpublished until the owner fills it in
	displayName := local
	if displayName == "" {
		displayName = fallbackNamePart
	}

	now := time.Now()
	p := &profile.Profile{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
		Slug:        slug,
		Genres:      []string{},
		Languages:   []string{},
		IsPublished: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// A concurrent provision racing for the same handle surfaces here
	// as ErrSlugTaken from the database.
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ========================================
// READS
// ========================================

func (s *profileService) GetOwn(ctx context.Context, userID uuid.UUID) (*profile.OwnProfileDTO, error) {
	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := profile.ToOwnProfileDTO(p, s.ResolveURL)
	return &dto, nil
}

// GetOwnWithRetry retries a not-found once after a short delay. Right
// after EnsureProfile a read replica may not have seen the insert yet;
// one bounded retry papers over that window without hiding real errors.
func (s *profileService) GetOwnWithRetry(ctx context.Context, userID uuid.UUID) (*profile.OwnProfileDTO, error) {
	dto, err := s.GetOwn(ctx, userID)
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return dto, err
	}

	select {
	case <-time.After(provisionRetryGap):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return s.GetOwn(ctx, userID)
}

func (s *profileService) GetBySlug(ctx context.Context, slug string, viewerID *uuid.UUID) (*profile.ArtistDTO, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Unpublished profiles exist only for their owner
	if !p.IsPublished && (viewerID == nil || *viewerID != p.ID) {
		return nil, profile.ErrProfileNotFound
	}

	dto := profile.ToArtistDTO(p, 0, s.ResolveURL)
	return &dto, nil
}

// ========================================
// EDIT
// ========================================

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, req profile.UpdateProfileRequest) (*profile.OwnProfileDTO, error) {
	// 1. VALIDATE
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. LOAD CURRENT ROW (a missing row is treated as a create, the
	// edit form works even if provisioning was skipped somehow)
	existing, err := s.repo.FindByID(ctx, userID)
	if err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, err
	}

	// 3. RESOLVE THE HANDLE: requested -> display name -> artist-<id>
	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.DisplayName)
	}
	if slug == "" {
		slug = "artist-" + userID.String()[:8]
	}

	// 4. CONFLICT CHECK when the handle changes, excluding self
	if existing == nil || slug != existing.Slug {
		inUse, err := s.repo.SlugInUse(ctx, slug, userID)
		if err != nil {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		if inUse {
			return nil, profile.ErrSlugTaken
		}
	}

	// 5. BUILD THE ROW: trim text, split comma tags, cap the bio
	now := time.Now()
	p := &profile.Profile{
		ID:          userID,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Slug:        slug,
		City:        strings.TrimSpace(req.City),
		Country:     strings.TrimSpace(req.Country),
		Genres:      normalizeTags(req.Genres),
		Languages:   normalizeTags(req.Languages),
		PriceFrom:   utils.ParseFloatToDecimal(req.PriceFrom),
		Bio:         capBio(strings.TrimSpace(req.Bio)),
		EmailPublic: strings.TrimSpace(req.EmailPublic),
		Phone:       strings.TrimSpace(req.Phone),
		Instagram:   strings.TrimSpace(req.Instagram),
		Website:     strings.TrimSpace(req.Website),
		YouTube:     strings.TrimSpace(req.YouTube),
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing != nil {
		p.Email = existing.Email
		p.AvatarPath = existing.AvatarPath
		p.BannerPath = existing.BannerPath
		p.CreatedAt = existing.CreatedAt
	}

	// 6. PERSIST (residual handle race -> ErrSlugTaken)
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	dto := profile.ToOwnProfileDTO(p, s.ResolveURL)
	return &dto, nil
}

// ========================================
// MEDIA
// ========================================

func (s *profileService) UploadMedia(ctx context.Context, userID uuid.UUID, kind profile.MediaKind, data []byte) (*profile.OwnProfileDTO, error) {
	if s.store == nil {
		return nil, profile.ErrStorageDisabled
	}
	if kind != profile.MediaAvatar && kind != profile.MediaBanner {
		return nil, fmt.Errorf("%w: unknown media kind %q", profile.ErrInvalidMedia, kind)
	}

	// Uploads require an existing row so the path has somewhere to live
	existing, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.processor.ValidateImage(data); err != nil {
		return nil, fmt.Errorf("%w: %v", profile.ErrInvalidMedia, err)
	}

	var processed []byte
	var oldPath string
	switch kind {
	case profile.MediaAvatar:
		processed, err = s.processor.ProcessAvatar(data)
		oldPath = existing.AvatarPath
	case profile.MediaBanner:
		processed, err = s.processor.ProcessBanner(data)
		oldPath = existing.BannerPath
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", profile.ErrInvalidMedia, err)
	}

	// Key scheme: <kind>s/<user-id>-<unix-ms>.jpg
	// Timestamped keys sidestep CDN caching of the previous image.
	key := fmt.Sprintf("%ss/%s-%d.jpg", kind, userID, time.Now().UnixMilli())

	if _, err := s.store.Upload(ctx, key, processed, "image/jpeg"); err != nil {
		return nil, err
	}

	switch kind {
	case profile.MediaAvatar:
		err = s.repo.UpdateAvatarPath(ctx, userID, key)
	case profile.MediaBanner:
		err = s.repo.UpdateBannerPath(ctx, userID, key)
	}
	if err != nil {
		return nil, err
	}

	// Old object cleanup is best effort
	if oldPath != "" {
		if err := s.store.Delete(ctx, oldPath); err != nil {
			logger.Warn("failed to delete replaced media", map[string]interface{}{
				"path":  oldPath,
				"error": err.Error(),
			})
		}
	}

	return s.GetOwn(ctx, userID)
}

func (s *profileService) ResolveURL(path string) string {
	if path == "" || s.store == nil {
		return ""
	}
	return s.store.PublicURL(path)
}

// ========================================
// HELPERS
// ========================================

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

// normalizeTags flattens comma-joined entries and trims whitespace:
// ["techno, house", "funk"] -> ["techno","house","funk"]
func normalizeTags(tags []string) []string {
	return utils.SplitTags(strings.Join(tags, ","))
}

// capBio truncates to MaxBioLength characters, never mid-rune.
func capBio(bio string) string {
	runes := []rune(bio)
	if len(runes) > profile.MaxBioLength {
		return string(runes[:profile.MaxBioLength])
	}
	return bio
}
