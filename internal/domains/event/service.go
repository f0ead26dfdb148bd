package event

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for events.
type Service interface {
	CreateEvent(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, filter ListFilter) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, id, requesterID uuid.UUID, req UpdateEventRequest) (*Event, error)
	CancelEvent(ctx context.Context, id, requesterID uuid.UUID) error

	JoinEvent(ctx context.Context, eventID, userID uuid.UUID) (*Event, error)
	LeaveEvent(ctx context.Context, eventID, userID uuid.UUID) (*Event, error)
	MarkInterested(ctx context.Context, eventID, userID uuid.UUID) (*Event, error)
	RemoveInterested(ctx context.Context, eventID, userID uuid.UUID) (*Event, error)
}
