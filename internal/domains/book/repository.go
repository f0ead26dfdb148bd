package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for catalog documents.
type Repository interface {
	Insert(ctx context.Context, b *Book) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)
	List(ctx context.Context, filter ListFilter) ([]*Book, int, error)
	Update(ctx context.Context, b *Book) error

	// UpdateRatingStats persists only the derived aggregate columns. Used by
	// the review flow after ApplyNewRating / ApplyRatingEdit.
	UpdateRatingStats(ctx context.Context, b *Book) error
}
