package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bookclub-backend/internal/domains/book"
	"bookclub-backend/pkg/cache"
	"bookclub-backend/pkg/logger"
)

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

type postgresBookRepository struct {
	db    *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresBookRepository creates a catalog repository backed by Postgres
// with a Redis read-through cache on FindByID.
func NewPostgresBookRepository(db *pgxpool.Pool, c cache.Cache) book.Repository {
	return &postgresBookRepository{db: db, cache: c}
}

func bookCacheKey(id uuid.UUID) string {
	return bookCacheKeyPrefix + id.String()
}

const selectBookQuery = `
	SELECT id, title, author, isbn, description, cover_image,
	       published_year, pages, language, genres,
	       average_rating, total_ratings, total_reviews,
	       is_active, created_at, updated_at
	FROM books`

func (r *postgresBookRepository) Insert(ctx context.Context, b *book.Book) (uuid.UUID, error) {
	if b.Genres == nil {
		b.Genres = pq.StringArray{}
	}

	query := `
		INSERT INTO books (
			title, author, isbn, description, cover_image,
			published_year, pages, language, genres, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		b.Title, b.Author, b.ISBN, b.Description, b.CoverImage,
		b.PublishedYear, b.Pages, b.Language, b.Genres, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, book.ErrISBNAlreadyExists
		}
		return uuid.Nil, fmt.Errorf("insert book: %w", err)
	}

	return b.ID, nil
}

func (r *postgresBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	var cached book.Book
	found, err := r.cache.Get(ctx, bookCacheKey(id), &cached)
	if err != nil {
		logger.Warn("book cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	b, err := scanBook(r.db.QueryRow(ctx, selectBookQuery+" WHERE id = $1", id))
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, bookCacheKey(id), b, bookCacheTTL); err != nil {
		logger.Warn("book cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return b, nil
}

func (r *postgresBookRepository) List(ctx context.Context, filter book.ListFilter) ([]*book.Book, int, error) {
	filter.Normalize()

	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}
	argn := 1

	if filter.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(genres)", argn))
		args = append(args, filter.Genre)
		argn++
	}
	if filter.Author != "" {
		conditions = append(conditions, fmt.Sprintf("author ILIKE $%d", argn))
		args = append(args, "%"+filter.Author+"%")
		argn++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", argn, argn))
		args = append(args, "%"+filter.Search+"%")
		argn++
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM books"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	query := selectBookQuery + where +
		fmt.Sprintf(" ORDER BY average_rating DESC, created_at DESC LIMIT $%d OFFSET $%d", argn, argn+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []*book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}

	return books, total, rows.Err()
}

func (r *postgresBookRepository) Update(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books
		SET title = $2, author = $3, description = $4, cover_image = $5,
		    published_year = $6, pages = $7, language = $8, genres = $9,
		    is_active = $10, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		b.ID, b.Title, b.Author, b.Description, b.CoverImage,
		b.PublishedYear, b.Pages, b.Language, b.Genres, b.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, b.ID)
	return nil
}

func (r *postgresBookRepository) UpdateRatingStats(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books
		SET average_rating = $2, total_ratings = $3, total_reviews = $4,
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, b.ID, b.AverageRating, b.TotalRatings, b.TotalReviews)
	if err != nil {
		return fmt.Errorf("update book rating stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, b.ID)
	return nil
}

func (r *postgresBookRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, bookCacheKey(id)); err != nil {
		logger.Warn("book cache invalidation failed", map[string]interface{}{
			"book_id": id.String(),
			"error":   err.Error(),
		})
	}
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Description, &b.CoverImage,
		&b.PublishedYear, &b.Pages, &b.Language, &b.Genres,
		&b.AverageRating, &b.TotalRatings, &b.TotalReviews,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}
	return &b, nil
}
