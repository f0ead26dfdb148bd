package event

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for event documents.
type Repository interface {
	Insert(ctx context.Context, e *Event) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, filter ListFilter) ([]*Event, int, error)
	Update(ctx context.Context, e *Event) error
}
