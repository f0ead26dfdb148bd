package event

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func newEvent(maxAttendees *int) *Event {
	return &Event{
		ID:           uuid.New(),
		Organizer:    uuid.New(),
		Title:        "september meetup",
		Date:         time.Now().Add(72 * time.Hour),
		MaxAttendees: maxAttendees,
	}
}

func TestAddAttendee_CapacityCeiling(t *testing.T) {
	e := newEvent(intPtr(2))
	now := time.Now()

	require.NoError(t, e.AddAttendee(uuid.New(), now))
	require.NoError(t, e.AddAttendee(uuid.New(), now))

	err := e.AddAttendee(uuid.New(), now)
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Equal(t, 2, e.AttendeeCount())
}

func TestAddAttendee_IdempotentJoin(t *testing.T) {
	e := newEvent(intPtr(2))
	userID := uuid.New()
	now := time.Now()

	require.NoError(t, e.AddAttendee(userID, now))
	require.NoError(t, e.AddAttendee(userID, now))
	assert.Equal(t, 1, e.AttendeeCount())
}

func TestAddAttendee_RejoinWhenFull(t *testing.T) {
	e := newEvent(intPtr(1))
	userID := uuid.New()

	require.NoError(t, e.AddAttendee(userID, time.Now()))
	// the capacity ceiling applies before the duplicate check, so even a
	// current attendee is turned away once the event fills up
	err := e.AddAttendee(userID, time.Now())
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Equal(t, 1, e.AttendeeCount())
}

func TestAddAttendee_RejoinBelowCapacity(t *testing.T) {
	e := newEvent(intPtr(3))
	userID := uuid.New()

	require.NoError(t, e.AddAttendee(userID, time.Now()))
	require.NoError(t, e.AddAttendee(uuid.New(), time.Now()))
	require.NoError(t, e.AddAttendee(userID, time.Now()))
	assert.Equal(t, 2, e.AttendeeCount())
}

func TestAddAttendee_Cancelled(t *testing.T) {
	e := newEvent(nil)
	e.Cancel()

	err := e.AddAttendee(uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrEventCancelled)
}

func TestAddAttendee_Uncapped(t *testing.T) {
	e := newEvent(nil)
	for i := 0; i < 50; i++ {
		require.NoError(t, e.AddAttendee(uuid.New(), time.Now()))
	}
	assert.Equal(t, 50, e.AttendeeCount())
}

func TestRemoveAttendee_Idempotent(t *testing.T) {
	e := newEvent(nil)
	userID := uuid.New()

	require.NoError(t, e.AddAttendee(userID, time.Now()))
	e.RemoveAttendee(userID)
	e.RemoveAttendee(userID)
	assert.Equal(t, 0, e.AttendeeCount())
}

func TestLeaveThenRejoin(t *testing.T) {
	e := newEvent(intPtr(2))
	userID := uuid.New()

	require.NoError(t, e.AddAttendee(userID, time.Now()))
	e.RemoveAttendee(userID)
	require.NoError(t, e.AddAttendee(userID, time.Now()))
	assert.Equal(t, 1, e.AttendeeCount())
}

func TestInterested_IndependentOfAttendance(t *testing.T) {
	e := newEvent(intPtr(1))
	userID := uuid.New()

	e.MarkInterested(userID)
	e.MarkInterested(userID)
	require.Len(t, e.Interested, 1)

	// the interested set does not count against capacity
	require.NoError(t, e.AddAttendee(userID, time.Now()))
	assert.True(t, e.IsAttending(userID))
	assert.Len(t, e.Interested, 1)

	e.RemoveInterested(userID)
	e.RemoveInterested(userID)
	assert.Empty(t, e.Interested)
	assert.True(t, e.IsAttending(userID), "leaving the interested set must not unregister the attendee")
}
