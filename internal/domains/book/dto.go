package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Author        string   `json:"author" binding:"required"`
	ISBN          string   `json:"isbn" binding:"required"`
	Description   string   `json:"description"`
	CoverImage    *string  `json:"cover_image"`
	PublishedYear int      `json:"published_year"`
	Pages         int      `json:"pages"`
	Language      string   `json:"language"`
	Genres        []string `json:"genres"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ISBN, validation.Required, validation.Length(10, 17)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.PublishedYear, validation.Min(0), validation.Max(time.Now().Year()+1)),
		validation.Field(&r.Pages, validation.Min(0)),
	)
}

type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Description   *string  `json:"description"`
	CoverImage    *string  `json:"cover_image"`
	PublishedYear *int     `json:"published_year"`
	Pages         *int     `json:"pages"`
	Language      *string  `json:"language"`
	Genres        []string `json:"genres"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 300)),
		validation.Field(&r.Author, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

// ListFilter narrows and pages the catalog listing.
type ListFilter struct {
	Genre  string `form:"genre"`
	Author string `form:"author"`
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
