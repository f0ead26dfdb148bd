package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookclub-backend/internal/domains/review"
)

type postgresReviewRepository struct {
	db *pgxpool.Pool
}

// NewPostgresReviewRepository creates a review ledger repository. The unique
// index on (user_id, book_id) is the real duplicate guard.
func NewPostgresReviewRepository(db *pgxpool.Pool) review.Repository {
	return &postgresReviewRepository{db: db}
}

const selectReviewQuery = `
	SELECT id, user_id, book_id, rating, title, content, is_spoiler,
	       quotes, likes, comments, helpful, not_helpful,
	       created_at, updated_at
	FROM reviews`

func (r *postgresReviewRepository) Insert(ctx context.Context, rv *review.Review) (uuid.UUID, error) {
	quotes, likes, comments, err := marshalEmbedded(rv)
	if err != nil {
		return uuid.Nil, err
	}

	query := `
		INSERT INTO reviews (
			user_id, book_id, rating, title, content, is_spoiler,
			quotes, likes, comments, helpful, not_helpful
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		rv.UserID, rv.BookID, rv.Rating, rv.Title, rv.Content, rv.IsSpoiler,
		quotes, likes, comments, rv.Helpful, rv.NotHelpful,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, review.ErrDuplicateReview
		}
		return uuid.Nil, fmt.Errorf("insert review: %w", err)
	}

	return rv.ID, nil
}

func (r *postgresReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	return scanReview(r.db.QueryRow(ctx, selectReviewQuery+" WHERE id = $1", id))
}

func (r *postgresReviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID, page, limit int) ([]*review.Review, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE book_id = $1`, bookID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	rows, err := r.db.Query(ctx,
		selectReviewQuery+` WHERE book_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		bookID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews by book: %w", err)
	}
	defer rows.Close()

	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *postgresReviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*review.Review, error) {
	rows, err := r.db.Query(ctx,
		selectReviewQuery+` WHERE user_id = $1 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews by user: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

func (r *postgresReviewRepository) Update(ctx context.Context, rv *review.Review) error {
	quotes, likes, comments, err := marshalEmbedded(rv)
	if err != nil {
		return err
	}

	query := `
		UPDATE reviews
		SET rating = $2, title = $3, content = $4, is_spoiler = $5,
		    quotes = $6, likes = $7, comments = $8,
		    helpful = $9, not_helpful = $10, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		rv.ID, rv.Rating, rv.Title, rv.Content, rv.IsSpoiler,
		quotes, likes, comments, rv.Helpful, rv.NotHelpful,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func collectReviews(rows pgx.Rows) ([]*review.Review, error) {
	var reviews []*review.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func scanReview(row pgx.Row) (*review.Review, error) {
	var rv review.Review
	var quotes, likes, comments []byte

	err := row.Scan(
		&rv.ID, &rv.UserID, &rv.BookID, &rv.Rating, &rv.Title, &rv.Content, &rv.IsSpoiler,
		&quotes, &likes, &comments, &rv.Helpful, &rv.NotHelpful,
		&rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	if err := json.Unmarshal(quotes, &rv.Quotes); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	if err := json.Unmarshal(likes, &rv.Likes); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}
	if err := json.Unmarshal(comments, &rv.Comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	return &rv, nil
}

func marshalEmbedded(rv *review.Review) (quotes, likes, comments []byte, err error) {
	if rv.Quotes == nil {
		rv.Quotes = []review.Quote{}
	}
	if rv.Likes == nil {
		rv.Likes = []uuid.UUID{}
	}
	if rv.Comments == nil {
		rv.Comments = []review.Comment{}
	}

	if quotes, err = json.Marshal(rv.Quotes); err != nil {
		return nil, nil, nil, fmt.Errorf("encode quotes: %w", err)
	}
	if likes, err = json.Marshal(rv.Likes); err != nil {
		return nil, nil, nil, fmt.Errorf("encode likes: %w", err)
	}
	if comments, err = json.Marshal(rv.Comments); err != nil {
		return nil, nil, nil, fmt.Errorf("encode comments: %w", err)
	}
	return quotes, likes, comments, nil
}
