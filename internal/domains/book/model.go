package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Book is a catalog document. AverageRating, TotalRatings and TotalReviews
// are derived aggregates, only ever changed through ApplyNewRating,
// ApplyRatingEdit and the review counters below.
type Book struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Author        string    `json:"author" db:"author"`
	ISBN          string    `json:"isbn" db:"isbn"`
	Description   string    `json:"description" db:"description"`
	CoverImage    *string   `json:"cover_image" db:"cover_image"`
	PublishedYear int       `json:"published_year" db:"published_year"`
	Pages         int       `json:"pages" db:"pages"`
	Language      string    `json:"language" db:"language"`

	Genres pq.StringArray `json:"genres" db:"genres"`

	AverageRating float64 `json:"average_rating" db:"average_rating"`
	TotalRatings  int     `json:"total_ratings" db:"total_ratings"`
	TotalReviews  int     `json:"total_reviews" db:"total_reviews"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyNewRating folds one new rating contribution into the running mean.
// Every call counts as one contribution; the caller must invoke it exactly
// once per new review.
func (b *Book) ApplyNewRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}

	b.AverageRating = (b.AverageRating*float64(b.TotalRatings) + float64(rating)) / float64(b.TotalRatings+1)
	b.TotalRatings++
	return nil
}

// ApplyRatingEdit replaces one prior contribution with a new value, leaving
// TotalRatings unchanged. If no contributions exist yet the edit degenerates
// to a fresh contribution.
func (b *Book) ApplyRatingEdit(oldRating, newRating int) error {
	if oldRating < 1 || oldRating > 5 || newRating < 1 || newRating > 5 {
		return ErrRatingOutOfRange
	}

	if b.TotalRatings == 0 {
		return b.ApplyNewRating(newRating)
	}

	b.AverageRating = (b.AverageRating*float64(b.TotalRatings) - float64(oldRating) + float64(newRating)) / float64(b.TotalRatings)
	return nil
}

// IncrementReviews bumps the review counter on review creation.
func (b *Book) IncrementReviews() {
	b.TotalReviews++
}

// DecrementReviews lowers the review counter on review deletion. Rating
// aggregates are intentionally left untouched by deletion.
func (b *Book) DecrementReviews() {
	if b.TotalReviews > 0 {
		b.TotalReviews--
	}
}
