package discussion

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateDiscussionRequest struct {
	Title    string     `json:"title" binding:"required"`
	Content  string     `json:"content" binding:"required"`
	Category Category   `json:"category" binding:"required"`
	BookID   *uuid.UUID `json:"book_id"`
}

func (r CreateDiscussionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required, validation.Length(1, 10000)),
		validation.Field(&r.Category, validation.Required, validation.By(categoryRule)),
	)
}

func categoryRule(value interface{}) error {
	c, _ := value.(Category)
	if !c.IsValid() {
		return validation.NewError("validation_category", "unknown discussion category")
	}
	return nil
}

type UpdateDiscussionRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (r UpdateDiscussionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Length(1, 10000)),
	)
}

type AddReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r AddReplyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 5000)),
	)
}

// ListFilter narrows and pages the discussion listing.
type ListFilter struct {
	Category string `form:"category"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// ToggleLikeResponse reports the state after the toggle.
type ToggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
