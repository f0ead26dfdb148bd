package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookclub-backend/internal/domains/discussion"
	"bookclub-backend/internal/domains/user"
	"bookclub-backend/pkg/logger"
)

type discussionService struct {
	repo  discussion.Repository
	users user.Repository
}

func NewDiscussionService(repo discussion.Repository, users user.Repository) discussion.Service {
	return &discussionService{repo: repo, users: users}
}

func (s *discussionService) CreateDiscussion(ctx context.Context, authorID uuid.UUID, req discussion.CreateDiscussionRequest) (*discussion.Discussion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d := &discussion.Discussion{
		Author:   authorID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		BookID:   req.BookID,
		IsActive: true,
	}

	if _, err := s.repo.Insert(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("discussion created", map[string]interface{}{
		"discussion_id": d.ID.String(),
		"author":        authorID.String(),
	})
	return d, nil
}

// GetDiscussion returns the discussion and records the view. The counter is
// monotonic; a failed counter write does not fail the read.
func (s *discussionService) GetDiscussion(ctx context.Context, id uuid.UUID) (*discussion.Discussion, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.IncrementView()
	if err := s.repo.Update(ctx, d); err != nil {
		logger.Warn("failed to record discussion view", map[string]interface{}{
			"discussion_id": id.String(),
			"error":         err.Error(),
		})
	}

	return d, nil
}

func (s *discussionService) ListDiscussions(ctx context.Context, filter discussion.ListFilter) ([]*discussion.Discussion, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *discussionService) UpdateDiscussion(ctx context.Context, id, requesterID uuid.UUID, req discussion.UpdateDiscussionRequest) (*discussion.Discussion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Author != requesterID {
		return nil, discussion.ErrNotDiscussionOwner
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Content != nil {
		d.Content = *req.Content
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *discussionService) AddReply(ctx context.Context, discussionID, authorID uuid.UUID, req discussion.AddReplyRequest) (*discussion.Reply, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	reply, err := d.AddReply(authorID, req.Content, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	s.bumpParticipation(ctx, authorID)
	return reply, nil
}

func (s *discussionService) MarkSolution(ctx context.Context, discussionID, replyID, requesterID uuid.UUID) (*discussion.Discussion, error) {
	d, err := s.repo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if d.Author != requesterID {
		return nil, discussion.ErrNotDiscussionOwner
	}

	if err := d.MarkSolution(replyID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *discussionService) ToggleLike(ctx context.Context, discussionID, actorID uuid.UUID) (*discussion.ToggleLikeResponse, error) {
	d, err := s.repo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	liked := d.ToggleLike(actorID)
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	return &discussion.ToggleLikeResponse{Liked: liked, LikeCount: d.LikeCount()}, nil
}

func (s *discussionService) ToggleReplyLike(ctx context.Context, discussionID, replyID, actorID uuid.UUID) (*discussion.ToggleLikeResponse, error) {
	d, err := s.repo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	liked, err := d.ToggleReplyLike(replyID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	count := 0
	for _, reply := range d.Replies {
		if reply.ID == replyID {
			count = len(reply.Likes)
		}
	}
	return &discussion.ToggleLikeResponse{Liked: liked, LikeCount: count}, nil
}

func (s *discussionService) SetLocked(ctx context.Context, discussionID, requesterID uuid.UUID, locked bool) error {
	d, err := s.repo.FindByID(ctx, discussionID)
	if err != nil {
		return err
	}
	if d.Author != requesterID {
		return discussion.ErrNotDiscussionOwner
	}

	d.IsLocked = locked
	return s.repo.Update(ctx, d)
}

func (s *discussionService) Deactivate(ctx context.Context, discussionID, requesterID uuid.UUID) error {
	d, err := s.repo.FindByID(ctx, discussionID)
	if err != nil {
		return err
	}
	if d.Author != requesterID {
		return discussion.ErrNotDiscussionOwner
	}

	d.IsActive = false
	return s.repo.Update(ctx, d)
}

func (s *discussionService) bumpParticipation(ctx context.Context, userID uuid.UUID) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("failed to load user for participation counter", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return
	}

	u.Stats.DiscussionsParticipated++
	if err := s.users.Update(ctx, u); err != nil {
		logger.Warn("failed to update participation counter", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}
}
