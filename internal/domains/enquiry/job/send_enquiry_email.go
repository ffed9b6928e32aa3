package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/aHaldin/pickmyartist/internal/domains/enquiry"
	"github.com/aHaldin/pickmyartist/internal/shared"
	"github.com/aHaldin/pickmyartist/internal/shared/utils"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

// ================================================
// SEND ENQUIRY EMAIL JOB HANDLER
// ================================================

type SendEnquiryEmailHandler struct {
	enquiryService enquiry.Service
}

func NewSendEnquiryEmailHandler(enquiryService enquiry.Service) *SendEnquiryEmailHandler {
	return &SendEnquiryEmailHandler{
		enquiryService: enquiryService,
	}
}

func (h *SendEnquiryEmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.SendEnquiryEmailPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		// A broken payload will never unmarshal on retry either
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	enquiryID, err := uuid.Parse(payload.EnquiryID)
	if err != nil {
		return fmt.Errorf("invalid enquiry id %q: %w", payload.EnquiryID, asynq.SkipRetry)
	}

	logger.Info("Processing enquiry email task", map[string]interface{}{
		"enquiry_id": enquiryID,
	})

	if err := h.enquiryService.NotifyArtist(ctx, enquiryID); err != nil {
		// Missing enquiry or missing artist email are permanent;
		// only transport failures are worth retrying.
		if errors.Is(err, enquiry.ErrEnquiryNotFound) ||
			errors.Is(err, enquiry.ErrArtistEmailUnavailable) ||
			errors.Is(err, enquiry.ErrEmailNotConfigured) {
			logger.Warn("Skipping enquiry email", map[string]interface{}{
				"enquiry_id": enquiryID,
				"reason":     err.Error(),
			})
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("notify artist: %w", err)
	}

	logger.Info("Sent enquiry email", map[string]interface{}{
		"enquiry_id": enquiryID,
	})

	return nil
}
