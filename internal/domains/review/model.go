package review

import (
	"time"

	"github.com/google/uuid"
)

// Quote is a cited passage attached to a review.
type Quote struct {
	Text       string `json:"text"`
	PageNumber int    `json:"page_number,omitempty"`
}

// Comment is an append-only response to a review.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is the ledger document. At most one exists per (user, book) pair;
// the storage layer enforces that with a unique constraint, not an
// application-level check.
type Review struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	BookID uuid.UUID `json:"book_id" db:"book_id"`

	Rating    int    `json:"rating" db:"rating"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	IsSpoiler bool   `json:"is_spoiler" db:"is_spoiler"`

	Quotes   []Quote     `json:"quotes" db:"quotes"`
	Likes    []uuid.UUID `json:"likes" db:"likes"`
	Comments []Comment   `json:"comments" db:"comments"`

	Helpful    int `json:"helpful" db:"helpful"`
	NotHelpful int `json:"not_helpful" db:"not_helpful"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ToggleLike flips actor membership in the like set and reports the new
// state: true when the actor now likes the review.
func (r *Review) ToggleLike(actor uuid.UUID) bool {
	for i, id := range r.Likes {
		if id == actor {
			r.Likes = append(r.Likes[:i], r.Likes[i+1:]...)
			return false
		}
	}
	r.Likes = append(r.Likes, actor)
	return true
}

// AddComment appends a comment. Comments are never edited or removed.
func (r *Review) AddComment(userID uuid.UUID, content string, now time.Time) Comment {
	c := Comment{
		ID:        uuid.New(),
		User:      userID,
		Content:   content,
		CreatedAt: now,
	}
	r.Comments = append(r.Comments, c)
	return c
}

func (r *Review) MarkHelpful() {
	r.Helpful++
}

func (r *Review) MarkNotHelpful() {
	r.NotHelpful++
}

func (r *Review) LikeCount() int {
	return len(r.Likes)
}

func (r *Review) CommentCount() int {
	return len(r.Comments)
}
