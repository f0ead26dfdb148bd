package review

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review already exists for this book")
	ErrNotReviewOwner  = errors.New("only the review author may modify it")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)
