package review

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookID    uuid.UUID `json:"book_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required"`
	Title     string    `json:"title" binding:"required"`
	Content   string    `json:"content" binding:"required"`
	IsSpoiler bool      `json:"is_spoiler"`
	Quotes    []Quote   `json:"quotes"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, validation.By(nonNilUUID)),
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required, validation.Length(1, 10000)),
		validation.Field(&r.Quotes, validation.Each(validation.By(quoteRule))),
	)
}

func quoteRule(value interface{}) error {
	q, _ := value.(Quote)
	if q.Text == "" {
		return validation.NewError("validation_quote", "quote text is required")
	}
	if len(q.Text) > 1000 {
		return validation.NewError("validation_quote", "quote text too long")
	}
	if q.PageNumber < 0 {
		return validation.NewError("validation_quote", "page number must not be negative")
	}
	return nil
}

// UpdateReviewRequest carries a partial edit; nil fields keep their current
// value.
type UpdateReviewRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Rating    *int    `json:"rating"`
	IsSpoiler *bool   `json:"is_spoiler"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Length(1, 10000)),
		validation.Field(&r.Rating, validation.Min(1), validation.Max(5)),
	)
}

type UpdateRatingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (r UpdateRatingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 2000)),
	)
}

// ToggleLikeResponse reports the state after the toggle.
type ToggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

func nonNilUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}
