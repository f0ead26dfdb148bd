package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"bookclub-backend/internal/domains/book"
	"bookclub-backend/internal/domains/review"
	"bookclub-backend/internal/domains/user"
	"bookclub-backend/internal/shared"
	"bookclub-backend/pkg/logger"
)

// TaskEnqueuer abstracts asynq.Client for testing.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// reviewService sequences a review mutation and its dependent aggregates.
// The three documents (review, book, user) are updated in that order without
// a cross-document transaction; on a mid-sequence failure earlier effects
// stay in place and the periodic reconcile job repairs the user counter.
type reviewService struct {
	reviews review.Repository
	books   book.Repository
	users   user.Repository
	tasks   TaskEnqueuer
}

func NewReviewService(reviews review.Repository, books book.Repository, users user.Repository, tasks TaskEnqueuer) review.Service {
	return &reviewService{
		reviews: reviews,
		books:   books,
		users:   users,
		tasks:   tasks,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req review.CreateReviewRequest) (*review.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.books.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	rv := &review.Review{
		UserID:    userID,
		BookID:    req.BookID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
		IsSpoiler: req.IsSpoiler,
		Quotes:    req.Quotes,
	}

	// Step 1: persist the review. The unique index on (user_id, book_id)
	// rejects a concurrent duplicate here, not at a precondition check.
	if _, err := s.reviews.Insert(ctx, rv); err != nil {
		return nil, err
	}

	// Step 2: fold the rating into the book aggregate.
	if err := b.ApplyNewRating(req.Rating); err != nil {
		return nil, err
	}
	b.IncrementReviews()
	if err := s.books.UpdateRatingStats(ctx, b); err != nil {
		logger.Error("review persisted but book aggregate update failed", err)
		return nil, err
	}

	// Step 3: bump the author's counter. Best effort; the reconcile job
	// recounts it from the ledger.
	s.bumpReviewsWritten(ctx, userID, +1)

	logger.Info("review created", map[string]interface{}{
		"review_id": rv.ID.String(),
		"book_id":   req.BookID.String(),
		"user_id":   userID.String(),
	})
	return rv, nil
}

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

func (s *reviewService) ListByBook(ctx context.Context, bookID uuid.UUID, page, limit int) ([]*review.Review, int, error) {
	return s.reviews.ListByBook(ctx, bookID, page, limit)
}

func (s *reviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*review.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}

// UpdateReview applies a partial, owner-only edit. A rating change swaps the
// old contribution for the new one in the book aggregate; the count stays
// fixed.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID, requesterID uuid.UUID, req review.UpdateReviewRequest) (*review.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rv, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.UserID != requesterID {
		return nil, review.ErrNotReviewOwner
	}

	oldRating := rv.Rating
	if req.Title != nil {
		rv.Title = *req.Title
	}
	if req.Content != nil {
		rv.Content = *req.Content
	}
	if req.IsSpoiler != nil {
		rv.IsSpoiler = *req.IsSpoiler
	}
	if req.Rating != nil {
		rv.Rating = *req.Rating
	}

	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}

	if req.Rating != nil && *req.Rating != oldRating {
		b, err := s.books.FindByID(ctx, rv.BookID)
		if err != nil {
			return nil, err
		}
		if err := b.ApplyRatingEdit(oldRating, *req.Rating); err != nil {
			return nil, err
		}
		if err := s.books.UpdateRatingStats(ctx, b); err != nil {
			return nil, err
		}
	}

	return rv, nil
}

func (s *reviewService) UpdateRating(ctx context.Context, reviewID, requesterID uuid.UUID, req review.UpdateRatingRequest) (*review.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.UpdateReview(ctx, reviewID, requesterID, review.UpdateReviewRequest{Rating: &req.Rating})
}

// DeleteReview removes the review and lowers the book's review counter. The
// rating aggregate keeps the deleted review's contribution; see the catalog
// model for the counters touched by deletion.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID, requesterID uuid.UUID) error {
	rv, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != requesterID {
		return review.ErrNotReviewOwner
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	b, err := s.books.FindByID(ctx, rv.BookID)
	if err == nil {
		b.DecrementReviews()
		if err := s.books.UpdateRatingStats(ctx, b); err != nil {
			logger.Warn("review deleted but book counter update failed", map[string]interface{}{
				"review_id": reviewID.String(),
				"error":     err.Error(),
			})
		}
	}

	s.bumpReviewsWritten(ctx, requesterID, -1)
	return nil
}

func (s *reviewService) ToggleLike(ctx context.Context, reviewID, actorID uuid.UUID) (*review.ToggleLikeResponse, error) {
	rv, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	liked := rv.ToggleLike(actorID)
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}

	return &review.ToggleLikeResponse{
		Liked:     liked,
		LikeCount: rv.LikeCount(),
	}, nil
}

func (s *reviewService) AddComment(ctx context.Context, reviewID, userID uuid.UUID, req review.AddCommentRequest) (*review.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rv, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	c := rv.AddComment(userID, req.Content, time.Now())
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *reviewService) MarkHelpful(ctx context.Context, reviewID uuid.UUID, helpful bool) (*review.Review, error) {
	rv, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if helpful {
		rv.MarkHelpful()
	} else {
		rv.MarkNotHelpful()
	}

	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

var reviewMilestones = []struct {
	count       int
	name        string
	description string
	icon        string
}{
	{1, "First Words", "Wrote your first review", "pen"},
	{10, "Critic", "Wrote 10 reviews", "quill"},
	{50, "Resident Reviewer", "Wrote 50 reviews", "scroll"},
}

func (s *reviewService) bumpReviewsWritten(ctx context.Context, userID uuid.UUID, delta int) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("failed to load user for review counter", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return
	}

	u.Stats.ReviewsWritten += delta
	if u.Stats.ReviewsWritten < 0 {
		u.Stats.ReviewsWritten = 0
	}

	if err := s.users.Update(ctx, u); err != nil {
		logger.Warn("failed to update review counter", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return
	}

	if delta > 0 {
		s.checkReviewMilestones(u)
	}
}

func (s *reviewService) checkReviewMilestones(u *user.User) {
	if s.tasks == nil {
		return
	}

	for _, m := range reviewMilestones {
		if u.Stats.ReviewsWritten != m.count || u.HasBadge(m.name) {
			continue
		}

		payload, err := json.Marshal(shared.AwardBadgePayload{
			UserID:      u.ID.String(),
			Name:        m.name,
			Description: m.description,
			Icon:        m.icon,
		})
		if err != nil {
			continue
		}

		task := asynq.NewTask(shared.TypeAwardBadge, payload)
		if _, err := s.tasks.Enqueue(task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(3)); err != nil {
			logger.Warn("failed to enqueue badge task", map[string]interface{}{
				"user_id": u.ID.String(),
				"badge":   m.name,
				"error":   err.Error(),
			})
		}
	}
}
