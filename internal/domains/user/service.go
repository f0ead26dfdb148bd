package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for the user domain.
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*ProfileDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Profile
	GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error)

	// Shelves
	MoveToShelf(ctx context.Context, userID uuid.UUID, shelf Shelf, req MoveToShelfRequest) error
	RemoveFromShelf(ctx context.Context, userID uuid.UUID, shelf Shelf, bookID uuid.UUID) error
	GetShelves(ctx context.Context, userID uuid.UUID) (*Shelves, error)

	// Reading progress
	StartReading(ctx context.Context, userID, bookID uuid.UUID) error
	FinishReading(ctx context.Context, userID, bookID uuid.UUID) error
	UpdateReadingProgress(ctx context.Context, userID, bookID uuid.UUID, progress int) error

	// Badges (called from the worker)
	AwardBadge(ctx context.Context, userID uuid.UUID, name, description, icon string) error
}
