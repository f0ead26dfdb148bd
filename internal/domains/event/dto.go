package event

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type CreateEventRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date" binding:"required"`
	Location     Location        `json:"location" binding:"required"`
	MaxAttendees *int            `json:"max_attendees"`
	Price        decimal.Decimal `json:"price"`
}

func (r CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Date, validation.Required, validation.By(futureDate)),
		validation.Field(&r.Location, validation.By(locationRule)),
		validation.Field(&r.MaxAttendees, validation.Min(1)),
		validation.Field(&r.Price, validation.By(nonNegativePrice)),
	)
}

type UpdateEventRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Date         *time.Time       `json:"date"`
	Location     *Location        `json:"location"`
	MaxAttendees *int             `json:"max_attendees"`
	Price        *decimal.Decimal `json:"price"`
}

func (r UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.MaxAttendees, validation.Min(1)),
	)
}

// ListFilter narrows and pages the event listing.
type ListFilter struct {
	City     string `form:"city"`
	Upcoming bool   `form:"upcoming"`
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

func futureDate(value interface{}) error {
	d, _ := value.(time.Time)
	if d.Before(time.Now()) {
		return validation.NewError("validation_date", "event date must be in the future")
	}
	return nil
}

func locationRule(value interface{}) error {
	loc, _ := value.(Location)
	if loc.Name == "" {
		return validation.NewError("validation_location", "location name is required")
	}
	if loc.IsOnline && loc.MeetingLink == "" {
		return validation.NewError("validation_location", "online events need a meeting link")
	}
	return nil
}

func nonNegativePrice(value interface{}) error {
	p, _ := value.(decimal.Decimal)
	if p.IsNegative() {
		return validation.NewError("validation_price", "price must not be negative")
	}
	return nil
}
