package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserInactive       = errors.New("user account is inactive")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized access")
)

// Shelf and reading-progress errors
var (
	ErrInvalidShelf        = errors.New("invalid shelf name")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidProgress     = errors.New("progress must be between 0 and 100")
	ErrNotCurrentlyReading = errors.New("book not found in currently reading")
)
