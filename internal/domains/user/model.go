package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Shelf identifies one of the three per-user book shelves. A book lives on
// at most one shelf at a time.
type Shelf string

const (
	ShelfToRead Shelf = "toRead"
	ShelfRead   Shelf = "read"
	ShelfDNF    Shelf = "dnf"
)

func (s Shelf) IsValid() bool {
	switch s {
	case ShelfToRead, ShelfRead, ShelfDNF:
		return true
	}
	return false
}

func (s Shelf) String() string {
	return string(s)
}

// ValidGenres enumerates the accepted favorite-genre tags.
var ValidGenres = []string{
	"Fiction", "Non-Fiction", "Mystery", "Romance", "Fantasy", "Sci-Fi",
	"Biography", "History", "Self-Help", "Business", "Philosophy",
	"Indian Literature", "Mythology", "Poetry", "Drama", "Thriller",
	"Horror", "Comedy", "Travel", "Food", "Art", "Science", "Technology",
}

func IsValidGenre(genre string) bool {
	for _, g := range ValidGenres {
		if g == genre {
			return true
		}
	}
	return false
}

// ReadingEntry is one book in the currently-reading list.
type ReadingEntry struct {
	Book      uuid.UUID `json:"book"`
	Progress  int       `json:"progress"` // 0-100
	StartedAt time.Time `json:"started_at"`
}

// ReadShelfEntry is one book on the read shelf, with an optional personal
// rating that is independent of any review.
type ReadShelfEntry struct {
	Book   uuid.UUID `json:"book"`
	ReadAt time.Time `json:"read_at"`
	Rating *int      `json:"rating,omitempty"` // 1-5
}

// Shelves holds the three mutually exclusive book collections.
type Shelves struct {
	ToRead []uuid.UUID      `json:"to_read"`
	Read   []ReadShelfEntry `json:"read"`
	DNF    []uuid.UUID      `json:"dnf"`
}

// Badge is an append-only achievement record.
type Badge struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
}

// Stats holds derived counters. They track the source events enumerated in
// the service layer and are never edited directly by callers.
type Stats struct {
	BooksRead               int `json:"books_read"`
	ReviewsWritten          int `json:"reviews_written"`
	DiscussionsParticipated int `json:"discussions_participated"`
	FollowersCount          int `json:"followers_count"`
	FollowingCount          int `json:"following_count"`
}

// User is the identity document. Shelves, currently-reading entries, badges
// and stats are embedded and written back as a whole.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`

	Avatar   *string `json:"avatar" db:"avatar"`
	Bio      string  `json:"bio" db:"bio"`
	Location string  `json:"location" db:"location"`

	FavoriteGenres   pq.StringArray `json:"favorite_genres" db:"favorite_genres"`
	CurrentlyReading []ReadingEntry `json:"currently_reading" db:"currently_reading"`
	Shelves          Shelves        `json:"shelves" db:"shelves"`
	Badges           []Badge        `json:"badges" db:"badges"`
	Stats            Stats          `json:"stats" db:"stats"`

	IsActive  bool       `json:"is_active" db:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty" db:"last_login"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ShelfFor reports which shelf currently holds the book, if any.
func (u *User) ShelfFor(bookID uuid.UUID) (Shelf, bool) {
	for _, id := range u.Shelves.ToRead {
		if id == bookID {
			return ShelfToRead, true
		}
	}
	for _, e := range u.Shelves.Read {
		if e.Book == bookID {
			return ShelfRead, true
		}
	}
	for _, id := range u.Shelves.DNF {
		if id == bookID {
			return ShelfDNF, true
		}
	}
	return "", false
}

// RemoveFromShelf drops the book from the given shelf. Absence is not an
// error.
func (u *User) RemoveFromShelf(shelf Shelf, bookID uuid.UUID) {
	switch shelf {
	case ShelfToRead:
		u.Shelves.ToRead = removeID(u.Shelves.ToRead, bookID)
	case ShelfRead:
		kept := u.Shelves.Read[:0]
		for _, e := range u.Shelves.Read {
			if e.Book != bookID {
				kept = append(kept, e)
			}
		}
		u.Shelves.Read = kept
	case ShelfDNF:
		u.Shelves.DNF = removeID(u.Shelves.DNF, bookID)
	}
}

// MoveToShelf reassigns the book to target, removing it from every shelf
// first so the mutual-exclusion invariant holds. A move to the read shelf
// records readAt and the optional rating, and bumps stats.BooksRead on every
// move, re-marks included.
func (u *User) MoveToShelf(bookID uuid.UUID, target Shelf, rating *int, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidShelf
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return ErrInvalidRating
	}

	u.RemoveFromShelf(ShelfToRead, bookID)
	u.RemoveFromShelf(ShelfRead, bookID)
	u.RemoveFromShelf(ShelfDNF, bookID)

	switch target {
	case ShelfToRead:
		u.Shelves.ToRead = append(u.Shelves.ToRead, bookID)
	case ShelfRead:
		u.Shelves.Read = append(u.Shelves.Read, ReadShelfEntry{
			Book:   bookID,
			ReadAt: now,
			Rating: rating,
		})
		u.Stats.BooksRead++
	case ShelfDNF:
		u.Shelves.DNF = append(u.Shelves.DNF, bookID)
	}

	return nil
}

// StartReading adds the book to the currently-reading list at progress 0.
// No-op if already present.
func (u *User) StartReading(bookID uuid.UUID, now time.Time) {
	for _, e := range u.CurrentlyReading {
		if e.Book == bookID {
			return
		}
	}
	u.CurrentlyReading = append(u.CurrentlyReading, ReadingEntry{
		Book:      bookID,
		Progress:  0,
		StartedAt: now,
	})
}

// FinishReading removes the book from the currently-reading list. Absence is
// not an error.
func (u *User) FinishReading(bookID uuid.UUID) {
	kept := u.CurrentlyReading[:0]
	for _, e := range u.CurrentlyReading {
		if e.Book != bookID {
			kept = append(kept, e)
		}
	}
	u.CurrentlyReading = kept
}

// UpdateReadingProgress sets progress for a book that must already be in the
// currently-reading list.
func (u *User) UpdateReadingProgress(bookID uuid.UUID, progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}

	for i := range u.CurrentlyReading {
		if u.CurrentlyReading[i].Book == bookID {
			u.CurrentlyReading[i].Progress = progress
			return nil
		}
	}

	return ErrNotCurrentlyReading
}

// AddBadge appends a badge. Badges are append-only; deduplication is the
// caller's concern (see HasBadge).
func (u *User) AddBadge(name, description, icon string, now time.Time) {
	u.Badges = append(u.Badges, Badge{
		Name:        name,
		Description: description,
		Icon:        icon,
		EarnedAt:    now,
	})
}

func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

// Sanitize removes sensitive data before sending to clients.
func (u *User) Sanitize() {
	u.PasswordHash = ""
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	kept := ids[:0]
	for _, id := range ids {
		if id != target {
			kept = append(kept, id)
		}
	}
	return kept
}
