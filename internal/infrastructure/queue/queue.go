package queue

import (
	"github.com/hibiken/asynq"

	"bookclub-backend/internal/shared"
)

// RedisOpt builds the asynq connection options from the Redis config.
func RedisOpt(host, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     host,
		Password: password,
		DB:       db,
	}
}

// NewClient creates the task producer used by the API process.
func NewClient(opt asynq.RedisClientOpt) *asynq.Client {
	return asynq.NewClient(opt)
}

// NewServer creates the task consumer used by the worker process.
func NewServer(opt asynq.RedisClientOpt, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}

	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			shared.QueueHigh:    6,
			shared.QueueDefault: 3,
			shared.QueueLow:     1,
		},
	})
}
