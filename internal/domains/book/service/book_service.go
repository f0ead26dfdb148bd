package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bookclub-backend/internal/domains/book"
	"bookclub-backend/pkg/logger"
)

type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) CreateBook(ctx context.Context, req book.CreateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b := &book.Book{
		Title:         strings.TrimSpace(req.Title),
		Author:        strings.TrimSpace(req.Author),
		ISBN:          strings.ReplaceAll(req.ISBN, "-", ""),
		Description:   req.Description,
		CoverImage:    req.CoverImage,
		PublishedYear: req.PublishedYear,
		Pages:         req.Pages,
		Language:      req.Language,
		Genres:        req.Genres,
		IsActive:      true,
	}

	if _, err := s.repo.Insert(ctx, b); err != nil {
		return nil, err
	}

	logger.Info("book created", map[string]interface{}{
		"book_id": b.ID.String(),
		"isbn":    b.ISBN,
	})
	return b, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *bookService) ListBooks(ctx context.Context, filter book.ListFilter) ([]*book.Book, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req book.UpdateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		b.Author = strings.TrimSpace(*req.Author)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.CoverImage != nil {
		b.CoverImage = req.CoverImage
	}
	if req.PublishedYear != nil {
		b.PublishedYear = *req.PublishedYear
	}
	if req.Pages != nil {
		b.Pages = *req.Pages
	}
	if req.Language != nil {
		b.Language = *req.Language
	}
	if req.Genres != nil {
		b.Genres = req.Genres
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
