package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"bookclub-backend/internal/domains/user"
	"bookclub-backend/internal/shared"
	"bookclub-backend/pkg/logger"
)

const defaultReconcileBatchSize = 500

// ReconcileStatsHandler periodically recomputes review counters from the
// review ledger. Shelf-derived counters are left alone: they count events,
// not rows, so there is nothing to recount them against.
type ReconcileStatsHandler struct {
	repo user.Repository
}

func NewReconcileStatsHandler(repo user.Repository) *ReconcileStatsHandler {
	return &ReconcileStatsHandler{repo: repo}
}

func (h *ReconcileStatsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ReconcileStatsPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Warn("bad reconcile payload, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	batchSize := payload.BatchSize
	if batchSize <= 0 {
		batchSize = defaultReconcileBatchSize
	}

	fixed, err := h.repo.ReconcileReviewCounts(ctx, batchSize)
	if err != nil {
		return err
	}

	if fixed > 0 {
		logger.Info("review counters reconciled", map[string]interface{}{
			"corrected": fixed,
		})
	}
	return nil
}
