package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser() *User {
	return &User{
		ID:       uuid.New(),
		Name:     "Asha",
		Email:    "asha@example.com",
		IsActive: true,
	}
}

func TestMoveToShelf_MutualExclusion(t *testing.T) {
	u := newTestUser()
	bookID := uuid.New()
	now := time.Now()

	moves := []Shelf{ShelfToRead, ShelfRead, ShelfDNF, ShelfToRead, ShelfRead}
	for _, target := range moves {
		require.NoError(t, u.MoveToShelf(bookID, target, nil, now))

		shelf, ok := u.ShelfFor(bookID)
		require.True(t, ok)
		assert.Equal(t, target, shelf)

		// the book must appear on exactly one shelf
		count := 0
		for _, id := range u.Shelves.ToRead {
			if id == bookID {
				count++
			}
		}
		for _, e := range u.Shelves.Read {
			if e.Book == bookID {
				count++
			}
		}
		for _, id := range u.Shelves.DNF {
			if id == bookID {
				count++
			}
		}
		assert.Equal(t, 1, count, "book should be on exactly one shelf after moving to %s", target)
	}
}

func TestMoveToShelf_BooksReadCountsEveryMove(t *testing.T) {
	u := newTestUser()
	bookID := uuid.New()
	now := time.Now()

	require.NoError(t, u.MoveToShelf(bookID, ShelfRead, nil, now))
	assert.Equal(t, 1, u.Stats.BooksRead)

	// moving away does not decrement
	require.NoError(t, u.MoveToShelf(bookID, ShelfToRead, nil, now))
	assert.Equal(t, 1, u.Stats.BooksRead)

	// re-marking as read counts again
	require.NoError(t, u.MoveToShelf(bookID, ShelfRead, nil, now))
	assert.Equal(t, 2, u.Stats.BooksRead)
}

func TestMoveToShelf_RatingRecorded(t *testing.T) {
	u := newTestUser()
	bookID := uuid.New()
	rating := 4

	require.NoError(t, u.MoveToShelf(bookID, ShelfRead, &rating, time.Now()))
	require.Len(t, u.Shelves.Read, 1)
	require.NotNil(t, u.Shelves.Read[0].Rating)
	assert.Equal(t, 4, *u.Shelves.Read[0].Rating)
}

func TestMoveToShelf_Invalid(t *testing.T) {
	u := newTestUser()
	bookID := uuid.New()
	now := time.Now()

	assert.ErrorIs(t, u.MoveToShelf(bookID, Shelf("favorites"), nil, now), ErrInvalidShelf)

	for _, bad := range []int{0, 6, -1} {
		r := bad
		assert.ErrorIs(t, u.MoveToShelf(bookID, ShelfRead, &r, now), ErrInvalidRating)
	}

	// nothing was added by the failed moves
	_, ok := u.ShelfFor(bookID)
	assert.False(t, ok)
	assert.Equal(t, 0, u.Stats.BooksRead)
}

func TestRemoveFromShelf_Idempotent(t *testing.T) {
	u := newTestUser()
	bookID := uuid.New()
	other := uuid.New()

	require.NoError(t, u.MoveToShelf(bookID, ShelfToRead, nil, time.Now()))
	require.NoError(t, u.MoveToShelf(other, ShelfToRead, nil, time.Now()))

	u.RemoveFromShelf(ShelfToRead, bookID)
	u.RemoveFromShelf(ShelfToRead, bookID)

	assert.Len(t, u.Shelves.ToRead, 1)
	assert.Equal(t, other, u.Shelves.ToRead[0])
}

func TestStartReading_Idempotent(t *testing.T) {
	u := newTestUser()
	bookID := uuid.New()
	now := time.Now()

	u.StartReading(bookID, now)
	u.StartReading(bookID, now.Add(time.Hour))

	require.Len(t, u.CurrentlyReading, 1)
	assert.Equal(t, 0, u.CurrentlyReading[0].Progress)
	assert.Equal(t, now, u.CurrentlyReading[0].StartedAt)
}

func TestUpdateReadingProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		wantErr  error
	}{
		{"lower bound", 0, nil},
		{"upper bound", 100, nil},
		{"mid", 42, nil},
		{"negative", -1, ErrInvalidProgress},
		{"over", 101, ErrInvalidProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newTestUser()
			bookID := uuid.New()
			u.StartReading(bookID, time.Now())

			err := u.UpdateReadingProgress(bookID, tt.progress)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, u.CurrentlyReading[0].Progress)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.progress, u.CurrentlyReading[0].Progress)
			}
		})
	}
}

func TestUpdateReadingProgress_NotReading(t *testing.T) {
	u := newTestUser()
	err := u.UpdateReadingProgress(uuid.New(), 50)
	assert.ErrorIs(t, err, ErrNotCurrentlyReading)
}

func TestFinishReading(t *testing.T) {
	u := newTestUser()
	bookID := uuid.New()
	u.StartReading(bookID, time.Now())

	u.FinishReading(bookID)
	assert.Empty(t, u.CurrentlyReading)

	// removing again is a no-op
	u.FinishReading(bookID)
	assert.Empty(t, u.CurrentlyReading)
}

func TestBadges(t *testing.T) {
	u := newTestUser()
	now := time.Now()

	assert.False(t, u.HasBadge("Bookworm"))
	u.AddBadge("Bookworm", "Finished 10 books", "bookshelf", now)
	assert.True(t, u.HasBadge("Bookworm"))
	require.Len(t, u.Badges, 1)
	assert.Equal(t, now, u.Badges[0].EarnedAt)
}

func TestShelfIsValid(t *testing.T) {
	assert.True(t, ShelfToRead.IsValid())
	assert.True(t, ShelfRead.IsValid())
	assert.True(t, ShelfDNF.IsValid())
	assert.False(t, Shelf("wishlist").IsValid())
	assert.False(t, Shelf("").IsValid())
}
