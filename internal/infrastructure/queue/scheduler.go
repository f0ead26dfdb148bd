package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"bookclub-backend/internal/shared"
)

// reconcileCron runs the counter reconciliation nightly, off-peak.
const reconcileCron = "30 3 * * *"

// NewScheduler creates the periodic task scheduler and registers the
// recurring jobs. Run alongside the worker process.
func NewScheduler(opt asynq.RedisClientOpt, reconcileBatchSize int) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(opt, nil)

	payload, err := json.Marshal(shared.ReconcileStatsPayload{BatchSize: reconcileBatchSize})
	if err != nil {
		return nil, fmt.Errorf("marshal reconcile payload: %w", err)
	}

	_, err = scheduler.Register(
		reconcileCron,
		asynq.NewTask(shared.TypeReconcileStats, payload),
		asynq.Queue(shared.QueueLow),
	)
	if err != nil {
		return nil, fmt.Errorf("register reconcile schedule: %w", err)
	}

	return scheduler, nil
}
