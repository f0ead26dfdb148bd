package book

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for the catalog.
type Service interface {
	CreateBook(ctx context.Context, req CreateBookRequest) (*Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context, filter ListFilter) ([]*Book, int, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req UpdateBookRequest) (*Book, error)
}
