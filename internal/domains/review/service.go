package review

import (
	"context"

	"github.com/google/uuid"
)

// Service sequences review mutations and their dependent aggregates.
type Service interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*Review, error)
	ListByBook(ctx context.Context, bookID uuid.UUID, page, limit int) ([]*Review, int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Review, error)
	UpdateReview(ctx context.Context, reviewID, requesterID uuid.UUID, req UpdateReviewRequest) (*Review, error)
	UpdateRating(ctx context.Context, reviewID, requesterID uuid.UUID, req UpdateRatingRequest) (*Review, error)
	DeleteReview(ctx context.Context, reviewID, requesterID uuid.UUID) error

	ToggleLike(ctx context.Context, reviewID, actorID uuid.UUID) (*ToggleLikeResponse, error)
	AddComment(ctx context.Context, reviewID, userID uuid.UUID, req AddCommentRequest) (*Comment, error)
	MarkHelpful(ctx context.Context, reviewID uuid.UUID, helpful bool) (*Review, error)
}
