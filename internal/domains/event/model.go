package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Location describes where an event happens. Online events carry a meeting
// link instead of an address.
type Location struct {
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	IsOnline    bool   `json:"is_online"`
	MeetingLink string `json:"meeting_link,omitempty"`
}

// Attendee is one registration record.
type Attendee struct {
	User     uuid.UUID `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// Event is an engagement document. Attendees and interested sets are
// embedded; the capacity ceiling is checked at join time, not by the schema.
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Organizer   uuid.UUID `json:"organizer" db:"organizer"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`

	Date     time.Time `json:"date" db:"date"`
	Location Location  `json:"location" db:"location"`

	MaxAttendees *int            `json:"max_attendees,omitempty" db:"max_attendees"`
	Attendees    []Attendee      `json:"attendees" db:"attendees"`
	Interested   []uuid.UUID     `json:"interested" db:"interested"`
	Price        decimal.Decimal `json:"price" db:"price"`

	IsCancelled bool      `json:"is_cancelled" db:"is_cancelled"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsAttending reports membership in the attendee list.
func (e *Event) IsAttending(userID uuid.UUID) bool {
	for _, a := range e.Attendees {
		if a.User == userID {
			return true
		}
	}
	return false
}

// AddAttendee registers the user. Capacity is checked before the duplicate
// check, so re-joining a full event fails even for a current attendee. The
// check is synchronous before the append; two concurrent joins near capacity
// can still both pass it (accepted weak consistency).
func (e *Event) AddAttendee(userID uuid.UUID, now time.Time) error {
	if e.IsCancelled {
		return ErrEventCancelled
	}
	if e.MaxAttendees != nil && len(e.Attendees) >= *e.MaxAttendees {
		return ErrEventFull
	}
	if e.IsAttending(userID) {
		return nil
	}

	e.Attendees = append(e.Attendees, Attendee{User: userID, JoinedAt: now})
	return nil
}

// RemoveAttendee unregisters the user. Absence is not an error.
func (e *Event) RemoveAttendee(userID uuid.UUID) {
	kept := e.Attendees[:0]
	for _, a := range e.Attendees {
		if a.User != userID {
			kept = append(kept, a)
		}
	}
	e.Attendees = kept
}

// MarkInterested adds the user to the interested set; independent of
// attendance.
func (e *Event) MarkInterested(userID uuid.UUID) {
	for _, id := range e.Interested {
		if id == userID {
			return
		}
	}
	e.Interested = append(e.Interested, userID)
}

// RemoveInterested drops the user from the interested set. Absence is not an
// error.
func (e *Event) RemoveInterested(userID uuid.UUID) {
	kept := e.Interested[:0]
	for _, id := range e.Interested {
		if id != userID {
			kept = append(kept, id)
		}
	}
	e.Interested = kept
}

// Cancel soft-cancels the event. Registrations are kept for the record.
func (e *Event) Cancel() {
	e.IsCancelled = true
}

func (e *Event) AttendeeCount() int {
	return len(e.Attendees)
}
