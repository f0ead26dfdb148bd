package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 50),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         ProfileDTO `json:"user"`
}

// ========================================
// PROFILE DTOs
// ========================================

type UpdateProfileRequest struct {
	Name           *string  `json:"name"`
	Bio            *string  `json:"bio"`
	Location       *string  `json:"location"`
	Avatar         *string  `json:"avatar"`
	FavoriteGenres []string `json:"favorite_genres"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 50)),
		validation.Field(&r.Bio, validation.Length(0, 500)),
		validation.Field(&r.Location, validation.Length(0, 100)),
		validation.Field(&r.FavoriteGenres, validation.Each(validation.By(genreRule))),
	)
}

func genreRule(value interface{}) error {
	s, _ := value.(string)
	if !IsValidGenre(s) {
		return validation.NewError("validation_genre", "unknown genre tag")
	}
	return nil
}

// ProfileDTO is the public view of a user.
type ProfileDTO struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Avatar           *string        `json:"avatar"`
	Bio              string         `json:"bio"`
	Location         string         `json:"location"`
	FavoriteGenres   []string       `json:"favorite_genres"`
	CurrentlyReading []ReadingEntry `json:"currently_reading"`
	Shelves          Shelves        `json:"shelves"`
	Stats            Stats          `json:"stats"`
	Badges           []Badge        `json:"badges"`
	CreatedAt        time.Time      `json:"created_at"`
}

func ToProfileDTO(u *User) ProfileDTO {
	return ProfileDTO{
		ID:               u.ID,
		Name:             u.Name,
		Avatar:           u.Avatar,
		Bio:              u.Bio,
		Location:         u.Location,
		FavoriteGenres:   u.FavoriteGenres,
		CurrentlyReading: u.CurrentlyReading,
		Shelves:          u.Shelves,
		Stats:            u.Stats,
		Badges:           u.Badges,
		CreatedAt:        u.CreatedAt,
	}
}

// ========================================
// SHELF DTOs
// ========================================

type MoveToShelfRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
	Rating *int      `json:"rating"`
}

func (r MoveToShelfRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, validation.By(uuidRule)),
		validation.Field(&r.Rating, validation.Min(1), validation.Max(5)),
	)
}

type UpdateProgressRequest struct {
	Progress int `json:"progress"`
}

func (r UpdateProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Progress, validation.Min(0), validation.Max(100)),
	)
}

type StartReadingRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

func (r StartReadingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, validation.By(uuidRule)),
	)
}

func uuidRule(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}
