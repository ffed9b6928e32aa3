package queue

import (
	"github.com/hibiken/asynq"
)

// NewClient builds the asynq producer used by the API to enqueue tasks.
func NewClient(redisAddress, password string, db int) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddress,
		Password: password,
		DB:       db,
	})
}
