package discussion

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for discussions.
type Service interface {
	CreateDiscussion(ctx context.Context, authorID uuid.UUID, req CreateDiscussionRequest) (*Discussion, error)
	GetDiscussion(ctx context.Context, id uuid.UUID) (*Discussion, error)
	ListDiscussions(ctx context.Context, filter ListFilter) ([]*Discussion, int, error)
	UpdateDiscussion(ctx context.Context, id, requesterID uuid.UUID, req UpdateDiscussionRequest) (*Discussion, error)

	AddReply(ctx context.Context, discussionID, authorID uuid.UUID, req AddReplyRequest) (*Reply, error)
	MarkSolution(ctx context.Context, discussionID, replyID, requesterID uuid.UUID) (*Discussion, error)
	ToggleLike(ctx context.Context, discussionID, actorID uuid.UUID) (*ToggleLikeResponse, error)
	ToggleReplyLike(ctx context.Context, discussionID, replyID, actorID uuid.UUID) (*ToggleLikeResponse, error)

	SetLocked(ctx context.Context, discussionID, requesterID uuid.UUID, locked bool) error
	Deactivate(ctx context.Context, discussionID, requesterID uuid.UUID) error
}
