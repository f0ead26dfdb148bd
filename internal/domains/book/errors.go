package book

import "errors"

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrISBNAlreadyExists = errors.New("book with this ISBN already exists")
	ErrRatingOutOfRange  = errors.New("rating must be between 1 and 5")
)
