package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookclub-backend/internal/domains/event"
	"bookclub-backend/pkg/logger"
)

type eventService struct {
	repo event.Repository
}

func NewEventService(repo event.Repository) event.Service {
	return &eventService{repo: repo}
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID uuid.UUID, req event.CreateEventRequest) (*event.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &event.Event{
		Organizer:    organizerID,
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		Price:        req.Price,
	}

	if _, err := s.repo.Insert(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("event created", map[string]interface{}{
		"event_id":  e.ID.String(),
		"organizer": organizerID.String(),
	})
	return e, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context, filter event.ListFilter) ([]*event.Event, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *eventService) UpdateEvent(ctx context.Context, id, requesterID uuid.UUID, req event.UpdateEventRequest) (*event.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Organizer != requesterID {
		return nil, event.ErrNotOrganizer
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.MaxAttendees != nil {
		e.MaxAttendees = req.MaxAttendees
	}
	if req.Price != nil {
		e.Price = *req.Price
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) CancelEvent(ctx context.Context, id, requesterID uuid.UUID) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if e.Organizer != requesterID {
		return event.ErrNotOrganizer
	}

	e.Cancel()
	if err := s.repo.Update(ctx, e); err != nil {
		return err
	}

	logger.Info("event cancelled", map[string]interface{}{
		"event_id": id.String(),
	})
	return nil
}

func (s *eventService) JoinEvent(ctx context.Context, eventID, userID uuid.UUID) (*event.Event, error) {
	e, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := e.AddAttendee(userID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) LeaveEvent(ctx context.Context, eventID, userID uuid.UUID) (*event.Event, error) {
	e, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	e.RemoveAttendee(userID)
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) MarkInterested(ctx context.Context, eventID, userID uuid.UUID) (*event.Event, error) {
	e, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	e.MarkInterested(userID)
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) RemoveInterested(ctx context.Context, eventID, userID uuid.UUID) (*event.Event, error) {
	e, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	e.RemoveInterested(userID)
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
