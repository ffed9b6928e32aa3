package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/aHaldin/pickmyartist/internal/shared"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

type Scheduler struct {
	scheduler     *asynq.Scheduler
	retentionDays int
}

func NewScheduler(redisAddress string, retentionDays int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:     scheduler,
		retentionDays: retentionDays,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerPruneArchivedEnquiriesJob()
}

// ================================================
// JOB: Prune Archived Enquiries (Daily at 3 AM)
// ================================================
// Archived enquiries are kept for the retention window so an artist can
// dig one back up, then removed to keep booker PII from piling up.
func (s *Scheduler) registerPruneArchivedEnquiriesJob() error {
	payload, err := json.Marshal(shared.PruneArchivedEnquiriesPayload{
		OlderThanDays: s.retentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePruneArchivedEnquiries, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PruneArchivedEnquiries job", err)
		return err
	}

	logger.Info("✓ Registered PruneArchivedEnquiries: daily at 3 AM", map[string]interface{}{
		"retention_days": s.retentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
