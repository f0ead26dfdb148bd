package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for the review ledger. Insert
// must map the storage-level unique violation on (user, book) to
// ErrDuplicateReview; a check-then-act in the service cannot close the race.
type Repository interface {
	Insert(ctx context.Context, rv *Review) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	ListByBook(ctx context.Context, bookID uuid.UUID, page, limit int) ([]*Review, int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Review, error)
	Update(ctx context.Context, rv *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
