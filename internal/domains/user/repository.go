package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for user documents. Update
// writes the whole document back; there are no partial shelf updates.
type Repository interface {
	Insert(ctx context.Context, u *User) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	// ReconcileReviewCounts recomputes stats.reviews_written from the
	// review ledger for up to limit users. Returns the number of rows
	// corrected.
	ReconcileReviewCounts(ctx context.Context, limit int) (int, error)
}
