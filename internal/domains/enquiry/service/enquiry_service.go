package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/aHaldin/pickmyartist/internal/domains/enquiry"
	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/email"
	"github.com/aHaldin/pickmyartist/internal/shared"
	"github.com/aHaldin/pickmyartist/internal/shared/utils"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

// TaskEnqueuer is the slice of asynq.Client the service needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// enquiryService implements enquiry.Service.
type enquiryService struct {
	repo     enquiry.Repository
	profiles profile.Repository
	sender   email.Sender // nil when no email provider is configured
	enqueuer TaskEnqueuer // nil when the queue is unavailable

	// notifyEnabled gates the email-per-enquiry flow; off by default
	notifyEnabled bool
}

func NewEnquiryService(
	repo enquiry.Repository,
	profiles profile.Repository,
	sender email.Sender,
	enqueuer TaskEnqueuer,
	notifyEnabled bool,
) enquiry.Service {
	return &enquiryService{
		repo:          repo,
		profiles:      profiles,
		sender:        sender,
		enqueuer:      enqueuer,
		notifyEnabled: notifyEnabled,
	}
}

// ========================================
// CREATE
// ========================================

func (s *enquiryService) Create(ctx context.Context, slug string, req enquiry.CreateEnquiryRequest) (*enquiry.EnquiryDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. RESOLVE THE TARGET ARTIST
	artist, err := s.profiles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// 3. BUSINESS RULE: bookings are open only for published artists
	// with a public contact email
	if !artist.IsPublished || artist.EmailPublic == "" {
		return nil, enquiry.ErrArtistNotAvailable
	}

	// 4. BUILD THE ENQUIRY
	var eventDate *time.Time
	if req.EventDate != "" {
		// Format already checked by Validate
		d, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			return nil, fmt.Errorf("parse event date: %w", err)
		}
		eventDate = &d
	}

	now := time.Now()
	e := &enquiry.Enquiry{
		ID:        uuid.New(),
		ArtistID:  artist.ID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		EventDate: eventDate,
		Location:  strings.TrimSpace(req.Location),
		Budget:    utils.ParseFloatToDecimal(req.Budget),
		Status:    enquiry.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 5. PERSIST
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	// 6. QUEUE THE NOTIFICATION EMAIL (feature-flagged, best effort -
	// a queue hiccup must never lose the enquiry itself)
	s.enqueueNotification(ctx, e.ID)

	dto := enquiry.ToDTO(e)
	return &dto, nil
}

func (s *enquiryService) enqueueNotification(ctx context.Context, enquiryID uuid.UUID) {
	if !s.notifyEnabled || s.enqueuer == nil {
		return
	}

	payload, err := json.Marshal(shared.SendEnquiryEmailPayload{EnquiryID: enquiryID.String()})
	if err != nil {
		logger.Error("marshal enquiry email payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeSendEnquiryEmail, payload)
	_, err = s.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		logger.Error("enqueue enquiry email task", err)
	}
}

// ========================================
// OWNER INBOX
// ========================================

func (s *enquiryService) ListForArtist(ctx context.Context, artistID uuid.UUID) ([]enquiry.EnquiryDTO, error) {
	list, err := s.repo.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	return enquiry.ToDTOs(list), nil
}

func (s *enquiryService) Latest(ctx context.Context, artistID uuid.UUID, limit int) ([]enquiry.EnquiryDTO, error) {
	list, err := s.repo.LatestByArtist(ctx, artistID, limit)
	if err != nil {
		return nil, err
	}
	return enquiry.ToDTOs(list), nil
}

func (s *enquiryService) CountNew(ctx context.Context, artistID uuid.UUID) (int, error) {
	return s.repo.CountNewByArtist(ctx, artistID)
}

func (s *enquiryService) UpdateStatus(ctx context.Context, id, artistID uuid.UUID, status enquiry.Status) (*enquiry.EnquiryDTO, error) {
	if !enquiry.ValidStatus(status) || status == enquiry.StatusNew {
		return nil, enquiry.ErrInvalidStatus
	}

	// The repository scopes the update to the owning artist; touching
	// a foreign enquiry looks identical to a missing one.
	if err := s.repo.UpdateStatus(ctx, id, artistID, status); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := enquiry.ToDTO(e)
	return &dto, nil
}

// ========================================
// NOTIFICATION EMAIL
// ========================================

func (s *enquiryService) NotifyArtist(ctx context.Context, enquiryID uuid.UUID) error {
	if s.sender == nil {
		return enquiry.ErrEmailNotConfigured
	}

	v, err := s.repo.FindForNotification(ctx, enquiryID)
	if err != nil {
		return err
	}

	if v.ArtistEmail == "" {
		return enquiry.ErrArtistEmailUnavailable
	}

	msg := email.Message{
		To:      v.ArtistEmail,
		Subject: fmt.Sprintf("New enquiry from %s", v.Name),
		Text:    renderEnquiryEmail(v),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send enquiry email: %w", err)
	}

	return nil
}

func renderEnquiryEmail(v *enquiry.NotificationView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", v.ArtistName)
	b.WriteString("You have a new booking enquiry on PickMyArtist.\n\n")
	fmt.Fprintf(&b, "From: %s <%s>\n", v.Name, v.Email)
	if v.EventDate != nil {
		fmt.Fprintf(&b, "Event date: %s\n", v.EventDate.Format("2006-01-02"))
	}
	if v.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", v.Location)
	}
	if v.Budget != nil {
		fmt.Fprintf(&b, "Budget: %s\n", v.Budget.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n\n", v.Message)
	b.WriteString("Reply directly to this email to get in touch.\n")
	return b.String()
}
