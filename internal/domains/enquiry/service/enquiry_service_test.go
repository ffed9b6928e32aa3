package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aHaldin/pickmyartist/internal/domains/enquiry"
	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/email"
)

// ========================================
// FAKES
// ========================================

type fakeEnquiryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*enquiry.Enquiry

	// artists backs FindForNotification
	artists map[uuid.UUID]*profile.Profile
}

func newFakeEnquiryRepo() *fakeEnquiryRepo {
	return &fakeEnquiryRepo{
		rows:    make(map[uuid.UUID]*enquiry.Enquiry),
		artists: make(map[uuid.UUID]*profile.Profile),
	}
}

func (r *fakeEnquiryRepo) Create(ctx context.Context, e *enquiry.Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.rows[e.ID] = &cp
	return nil
}

func (r *fakeEnquiryRepo) FindByID(ctx context.Context, id uuid.UUID) (*enquiry.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rows[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, enquiry.ErrEnquiryNotFound
}

func (r *fakeEnquiryRepo) FindForNotification(ctx context.Context, id uuid.UUID) (*enquiry.NotificationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, enquiry.ErrEnquiryNotFound
	}
	v := &enquiry.NotificationView{Enquiry: *e}
	if a, ok := r.artists[e.ArtistID]; ok {
		v.ArtistName = a.DisplayName
		v.ArtistEmail = a.EmailPublic
	}
	return v, nil
}

func (r *fakeEnquiryRepo) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]*enquiry.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*enquiry.Enquiry
	for _, e := range r.rows {
		if e.ArtistID == artistID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEnquiryRepo) LatestByArtist(ctx context.Context, artistID uuid.UUID, limit int) ([]*enquiry.Enquiry, error) {
	list, _ := r.ListByArtist(ctx, artistID)
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeEnquiryRepo) CountNewByArtist(ctx context.Context, artistID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, e := range r.rows {
		if e.ArtistID == artistID && e.Status == enquiry.StatusNew {
			count++
		}
	}
	return count, nil
}

func (r *fakeEnquiryRepo) UpdateStatus(ctx context.Context, id, artistID uuid.UUID, status enquiry.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok || e.ArtistID != artistID {
		return enquiry.ErrEnquiryNotFound
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	return nil
}

func (r *fakeEnquiryRepo) PruneArchived(ctx context.Context, archivedBefore time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, e := range r.rows {
		if e.Status == enquiry.StatusArchived && e.UpdatedAt.Before(archivedBefore) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

// fakeProfileRepo serves only the lookups the enquiry flow needs.
type fakeProfileRepo struct {
	bySlug map[string]*profile.Profile
}

func newFakeProfileRepo(profiles ...*profile.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{bySlug: make(map[string]*profile.Profile)}
	for _, p := range profiles {
		r.bySlug[p.Slug] = p
	}
	return r
}

func (r *fakeProfileRepo) FindBySlug(ctx context.Context, slug string) (*profile.Profile, error) {
	if p, ok := r.bySlug[slug]; ok {
		return p, nil
	}
	return nil, profile.ErrProfileNotFound
}

func (r *fakeProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	for _, p := range r.bySlug {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, profile.ErrProfileNotFound
}

func (r *fakeProfileRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, ok := r.bySlug[slug]
	return ok, nil
}

func (r *fakeProfileRepo) SlugInUse(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	p, ok := r.bySlug[slug]
	return ok && p.ID != excludeID, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	r.bySlug[p.Slug] = p
	return nil
}

func (r *fakeProfileRepo) UpsertIdentity(ctx context.Context, id uuid.UUID, email string) error {
	return nil
}

func (r *fakeProfileRepo) ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]*profile.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) UpdateAvatarPath(ctx context.Context, id uuid.UUID, path string) error {
	return nil
}

func (r *fakeProfileRepo) UpdateBannerPath(ctx context.Context, id uuid.UUID, path string) error {
	return nil
}

type fakeSender struct {
	sent []email.Message
	err  error
}

func (s *fakeSender) Send(ctx context.Context, msg email.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (e *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

// ========================================
// FIXTURES
// ========================================

func bookableArtist() *profile.Profile {
	return &profile.Profile{
		ID:          uuid.New(),
		DisplayName: "DJ Nova",
		Slug:        "dj-nova",
		EmailPublic: "bookings@djnova.example",
		IsPublished: true,
	}
}

func validCreateRequest() enquiry.CreateEnquiryRequest {
	return enquiry.CreateEnquiryRequest{
		Name:    "  Alex Booker ",
		Email:   "alex@example.com",
		Message: "We would love to book you for our festival.",
	}
}

// ========================================
// CREATE
// ========================================

func TestCreate_Success(t *testing.T) {
	artist := bookableArtist()
	repo := newFakeEnquiryRepo()
	svc := NewEnquiryService(repo, newFakeProfileRepo(artist), nil, nil, false)

	dto, err := svc.Create(context.Background(), "dj-nova", validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, enquiry.StatusNew, dto.Status)
	assert.Equal(t, "Alex Booker", dto.Name)

	stored, err := repo.FindByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, artist.ID, stored.ArtistID)
}

func TestCreate_AcceptsMixedCaseEmail(t *testing.T) {
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(bookableArtist()), nil, nil, false)

	req := validCreateRequest()
	req.Email = "Alex.Booker@Example.com"

	// Validation runs case-insensitively; the reply-to address keeps
	// the booker's casing
	dto, err := svc.Create(context.Background(), "dj-nova", req)
	require.NoError(t, err)
	assert.Equal(t, "Alex.Booker@Example.com", dto.Email)
}

func TestCreate_UnknownArtist(t *testing.T) {
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(), nil, nil, false)

	_, err := svc.Create(context.Background(), "nobody", validCreateRequest())
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestCreate_UnpublishedArtistRejected(t *testing.T) {
	artist := bookableArtist()
	artist.IsPublished = false
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(artist), nil, nil, false)

	_, err := svc.Create(context.Background(), "dj-nova", validCreateRequest())
	assert.ErrorIs(t, err, enquiry.ErrArtistNotAvailable)
}

func TestCreate_NoPublicEmailRejected(t *testing.T) {
	artist := bookableArtist()
	artist.EmailPublic = ""
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(artist), nil, nil, false)

	_, err := svc.Create(context.Background(), "dj-nova", validCreateRequest())
	assert.ErrorIs(t, err, enquiry.ErrArtistNotAvailable)
}

func TestCreate_InvalidEventDateRejected(t *testing.T) {
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(bookableArtist()), nil, nil, false)

	req := validCreateRequest()
	req.EventDate = "31-12-2026"

	_, err := svc.Create(context.Background(), "dj-nova", req)
	assert.Error(t, err)
}

func TestCreate_EnqueuesNotificationWhenEnabled(t *testing.T) {
	enq := &fakeEnqueuer{}
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(bookableArtist()), nil, enq, true)

	_, err := svc.Create(context.Background(), "dj-nova", validCreateRequest())
	require.NoError(t, err)

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, "enquiry:send_email", enq.tasks[0].Type())
}

func TestCreate_NoEnqueueWhenDisabled(t *testing.T) {
	enq := &fakeEnqueuer{}
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(bookableArtist()), nil, enq, false)

	_, err := svc.Create(context.Background(), "dj-nova", validCreateRequest())
	require.NoError(t, err)

	assert.Empty(t, enq.tasks)
}

// ========================================
// STATUS LIFECYCLE
// ========================================

func seedEnquiry(t *testing.T, repo *fakeEnquiryRepo, artistID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &enquiry.Enquiry{
		ID:       id,
		ArtistID: artistID,
		Name:     "Alex",
		Email:    "alex@example.com",
		Message:  "hello",
		Status:   enquiry.StatusNew,
	}))
	return id
}

func TestUpdateStatus_MarksReplied(t *testing.T) {
	repo := newFakeEnquiryRepo()
	artistID := uuid.New()
	id := seedEnquiry(t, repo, artistID)
	svc := NewEnquiryService(repo, newFakeProfileRepo(), nil, nil, false)

	dto, err := svc.UpdateStatus(context.Background(), id, artistID, enquiry.StatusReplied)
	require.NoError(t, err)
	assert.Equal(t, enquiry.StatusReplied, dto.Status)
}

func TestUpdateStatus_ForeignEnquiryLooksMissing(t *testing.T) {
	repo := newFakeEnquiryRepo()
	id := seedEnquiry(t, repo, uuid.New())
	svc := NewEnquiryService(repo, newFakeProfileRepo(), nil, nil, false)

	// A different artist must not be able to touch it
	_, err := svc.UpdateStatus(context.Background(), id, uuid.New(), enquiry.StatusArchived)
	assert.ErrorIs(t, err, enquiry.ErrEnquiryNotFound)
}

func TestUpdateStatus_RejectsNewAndUnknown(t *testing.T) {
	repo := newFakeEnquiryRepo()
	artistID := uuid.New()
	id := seedEnquiry(t, repo, artistID)
	svc := NewEnquiryService(repo, newFakeProfileRepo(), nil, nil, false)

	_, err := svc.UpdateStatus(context.Background(), id, artistID, enquiry.StatusNew)
	assert.ErrorIs(t, err, enquiry.ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), id, artistID, enquiry.Status("spam"))
	assert.ErrorIs(t, err, enquiry.ErrInvalidStatus)
}

// ========================================
// NOTIFY
// ========================================

func TestNotifyArtist_SendsEmail(t *testing.T) {
	repo := newFakeEnquiryRepo()
	artist := bookableArtist()
	repo.artists[artist.ID] = artist
	id := seedEnquiry(t, repo, artist.ID)
	sender := &fakeSender{}
	svc := NewEnquiryService(repo, newFakeProfileRepo(artist), sender, nil, true)

	err := svc.NotifyArtist(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "bookings@djnova.example", msg.To)
	assert.Equal(t, "New enquiry from Alex", msg.Subject)
	assert.True(t, strings.Contains(msg.Text, "alex@example.com"))
	assert.True(t, strings.Contains(msg.Text, "hello"))
}

func TestNotifyArtist_NoSenderConfigured(t *testing.T) {
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(), nil, nil, false)

	err := svc.NotifyArtist(context.Background(), uuid.New())
	assert.ErrorIs(t, err, enquiry.ErrEmailNotConfigured)
}

func TestNotifyArtist_UnknownEnquiry(t *testing.T) {
	svc := NewEnquiryService(newFakeEnquiryRepo(), newFakeProfileRepo(), &fakeSender{}, nil, false)

	err := svc.NotifyArtist(context.Background(), uuid.New())
	assert.ErrorIs(t, err, enquiry.ErrEnquiryNotFound)
}

func TestNotifyArtist_ArtistWithoutPublicEmail(t *testing.T) {
	repo := newFakeEnquiryRepo()
	artist := bookableArtist()
	artist.EmailPublic = ""
	repo.artists[artist.ID] = artist
	id := seedEnquiry(t, repo, artist.ID)
	svc := NewEnquiryService(repo, newFakeProfileRepo(artist), &fakeSender{}, nil, false)

	err := svc.NotifyArtist(context.Background(), id)
	assert.ErrorIs(t, err, enquiry.ErrArtistEmailUnavailable)
}
