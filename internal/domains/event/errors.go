package event

import "errors"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrEventFull      = errors.New("event has reached maximum attendees")
	ErrEventCancelled = errors.New("event has been cancelled")
	ErrNotOrganizer   = errors.New("only the organizer may do this")
)
