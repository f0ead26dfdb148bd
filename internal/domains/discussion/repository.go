package discussion

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for discussion documents.
type Repository interface {
	Insert(ctx context.Context, d *Discussion) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Discussion, error)
	List(ctx context.Context, filter ListFilter) ([]*Discussion, int, error)
	Update(ctx context.Context, d *Discussion) error
}
