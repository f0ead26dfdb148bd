package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"

	"bookclub-backend/internal/domains/book"
	"bookclub-backend/internal/domains/user"
	"bookclub-backend/internal/shared"
	"bookclub-backend/pkg/jwt"
	"bookclub-backend/pkg/logger"
)

// TaskEnqueuer abstracts asynq.Client for testing.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type userService struct {
	repo       user.Repository
	books      book.Repository
	jwtManager *jwt.Manager
	tasks      TaskEnqueuer
}

// NewUserService creates the user service. books, jwtManager and tasks may be
// nil in worker processes that only consume badge jobs.
func NewUserService(repo user.Repository, books book.Repository, jwtManager *jwt.Manager, tasks TaskEnqueuer) user.Service {
	return &userService{
		repo:       repo,
		books:      books,
		jwtManager: jwtManager,
		tasks:      tasks,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.ProfileDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if _, err := s.repo.Insert(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{
		"user_id": u.ID.String(),
		"email":   u.Email,
	})

	dto := user.ToProfileDTO(u)
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	expiresAt := time.Now().Add(s.jwtManager.AccessExpiry())

	if err := s.repo.UpdateLastLogin(ctx, u.ID); err != nil {
		logger.Warn("failed to record last login", map[string]interface{}{
			"user_id": u.ID.String(),
			"error":   err.Error(),
		})
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         user.ToProfileDTO(u),
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*user.ProfileDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := user.ToProfileDTO(u)
	return &dto, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req user.UpdateProfileRequest) (*user.ProfileDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}
	if req.FavoriteGenres != nil {
		u.FavoriteGenres = req.FavoriteGenres
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := user.ToProfileDTO(u)
	return &dto, nil
}

// ========================================
// SHELVES
// ========================================

func (s *userService) MoveToShelf(ctx context.Context, userID uuid.UUID, shelf user.Shelf, req user.MoveToShelfRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	// The shelf stores a reference; confirm it points at a real book before
	// touching the document.
	if _, err := s.books.FindByID(ctx, req.BookID); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	before := u.Stats.BooksRead
	if err := u.MoveToShelf(req.BookID, shelf, req.Rating, time.Now()); err != nil {
		return err
	}

	// Finishing a book also clears it from currently-reading.
	if shelf == user.ShelfRead || shelf == user.ShelfDNF {
		u.FinishReading(req.BookID)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	if u.Stats.BooksRead > before {
		s.checkReadingMilestones(u)
	}

	return nil
}

func (s *userService) RemoveFromShelf(ctx context.Context, userID uuid.UUID, shelf user.Shelf, bookID uuid.UUID) error {
	if !shelf.IsValid() {
		return user.ErrInvalidShelf
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	u.RemoveFromShelf(shelf, bookID)
	return s.repo.Update(ctx, u)
}

func (s *userService) GetShelves(ctx context.Context, userID uuid.UUID) (*user.Shelves, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &u.Shelves, nil
}

// ========================================
// READING PROGRESS
// ========================================

func (s *userService) StartReading(ctx context.Context, userID, bookID uuid.UUID) error {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	u.StartReading(bookID, time.Now())
	return s.repo.Update(ctx, u)
}

func (s *userService) FinishReading(ctx context.Context, userID, bookID uuid.UUID) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	u.FinishReading(bookID)
	return s.repo.Update(ctx, u)
}

func (s *userService) UpdateReadingProgress(ctx context.Context, userID, bookID uuid.UUID, progress int) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.UpdateReadingProgress(bookID, progress); err != nil {
		return err
	}

	return s.repo.Update(ctx, u)
}

// ========================================
// BADGES
// ========================================

// AwardBadge grants a badge once. Called by the background worker.
func (s *userService) AwardBadge(ctx context.Context, userID uuid.UUID, name, description, icon string) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if u.HasBadge(name) {
		return nil
	}

	u.AddBadge(name, description, icon, time.Now())
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	logger.Info("badge awarded", map[string]interface{}{
		"user_id": userID.String(),
		"badge":   name,
	})
	return nil
}

type milestone struct {
	count       int
	name        string
	description string
	icon        string
}

var readingMilestones = []milestone{
	{1, "First Steps", "Finished your first book", "book"},
	{10, "Bookworm", "Finished 10 books", "bookshelf"},
	{50, "Bibliophile", "Finished 50 books", "library"},
	{100, "Century Reader", "Finished 100 books", "trophy"},
}

func (s *userService) checkReadingMilestones(u *user.User) {
	if s.tasks == nil {
		return
	}

	for _, m := range readingMilestones {
		if u.Stats.BooksRead != m.count || u.HasBadge(m.name) {
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
