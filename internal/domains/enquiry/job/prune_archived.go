package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/aHaldin/pickmyartist/internal/domains/enquiry"
	"github.com/aHaldin/pickmyartist/internal/shared"
	"github.com/aHaldin/pickmyartist/internal/shared/utils"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

// ================================================
// PRUNE ARCHIVED ENQUIRIES JOB HANDLER
// ================================================

const defaultRetentionDays = 365

type PruneArchivedHandler struct {
	enquiryRepo enquiry.Repository
}

func NewPruneArchivedHandler(enquiryRepo enquiry.Repository) *PruneArchivedHandler {
	return &PruneArchivedHandler{
		enquiryRepo: enquiryRepo,
	}
}

func (h *PruneArchivedHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.PruneArchivedEnquiriesPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		logger.Error("Failed to unmarshal prune payload, using default retention", err)
	}

	days := payload.OlderThanDays
	if days <= 0 {
		days = defaultRetentionDays
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	logger.Info("Starting archived enquiry prune", map[string]interface{}{
		"retention_days": days,
		"cutoff":         cutoff.Format(time.RFC3339),
	})

	deleted, err := h.enquiryRepo.PruneArchived(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune archived enquiries: %w", err)
	}

	logger.Info("Completed archived enquiry prune", map[string]interface{}{
		"retention_days": days,
		"deleted_count":  deleted,
	})

	return nil
}
