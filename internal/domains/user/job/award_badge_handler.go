package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"bookclub-backend/internal/domains/user"
	"bookclub-backend/internal/shared"
	"bookclub-backend/pkg/logger"
)

// AwardBadgeHandler processes badge-grant tasks enqueued when a user crosses
// a milestone.
type AwardBadgeHandler struct {
	service user.Service
}

func NewAwardBadgeHandler(service user.Service) *AwardBadgeHandler {
	return &AwardBadgeHandler{service: service}
}

func (h *AwardBadgeHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.AwardBadgePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal award badge payload: %w", asynq.SkipRetry)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID %q: %w", payload.UserID, asynq.SkipRetry)
	}

	if err := h.service.AwardBadge(ctx, userID, payload.Name, payload.Description, payload.Icon); err != nil {
		if err == user.ErrUserNotFound {
			logger.Warn("badge task for missing user", map[string]interface{}{
				"user_id": payload.UserID,
			})
			return nil
		}
		return err
	}

	return nil
}
