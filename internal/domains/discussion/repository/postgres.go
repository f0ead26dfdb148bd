package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookclub-backend/internal/domains/discussion"
)

type postgresDiscussionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDiscussionRepository(db *pgxpool.Pool) discussion.Repository {
	return &postgresDiscussionRepository{db: db}
}

const selectDiscussionQuery = `
	SELECT id, author, title, content, category, book_id,
	       replies, likes, view_count, is_pinned, is_locked, is_active,
	       created_at, updated_at
	FROM discussions`

func (r *postgresDiscussionRepository) Insert(ctx context.Context, d *discussion.Discussion) (uuid.UUID, error) {
	replies, likes, err := marshalEmbedded(d)
	if err != nil {
		return uuid.Nil, err
	}

	query := `
		INSERT INTO discussions (
			author, title, content, category, book_id,
			replies, likes, view_count, is_pinned, is_locked, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		d.Author, d.Title, d.Content, d.Category, d.BookID,
		replies, likes, d.ViewCount, d.IsPinned, d.IsLocked, d.IsActive,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert discussion: %w", err)
	}

	return d.ID, nil
}

func (r *postgresDiscussionRepository) FindByID(ctx context.Context, id uuid.UUID) (*discussion.Discussion, error) {
	return scanDiscussion(r.db.QueryRow(ctx, selectDiscussionQuery+" WHERE id = $1", id))
}

func (r *postgresDiscussionRepository) List(ctx context.Context, filter discussion.ListFilter) ([]*discussion.Discussion, int, error) {
	filter.Normalize()

	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}
	argn := 1

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argn))
		args = append(args, filter.Category)
		argn++
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM discussions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count discussions: %w", err)
	}

	query := selectDiscussionQuery + where +
		fmt.Sprintf(" ORDER BY is_pinned DESC, created_at DESC LIMIT $%d OFFSET $%d", argn, argn+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list discussions: %w", err)
	}
	defer rows.Close()

	var out []*discussion.Discussion
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (r *postgresDiscussionRepository) Update(ctx context.Context, d *discussion.Discussion) error {
	replies, likes, err := marshalEmbedded(d)
	if err != nil {
		return err
	}

	query := `
		UPDATE discussions
		SET title = $2, content = $3, category = $4, book_id = $5,
		    replies = $6, likes = $7, view_count = $8,
		    is_pinned = $9, is_locked = $10, is_active = $11,
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		d.ID, d.Title, d.Content, d.Category, d.BookID,
		replies, likes, d.ViewCount, d.IsPinned, d.IsLocked, d.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update discussion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return discussion.ErrDiscussionNotFound
	}
	return nil
}

func scanDiscussion(row pgx.Row) (*discussion.Discussion, error) {
	var d discussion.Discussion
	var replies, likes []byte

	err := row.Scan(
		&d.ID, &d.Author, &d.Title, &d.Content, &d.Category, &d.BookID,
		&replies, &likes, &d.ViewCount, &d.IsPinned, &d.IsLocked, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, discussion.ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("scan discussion: %w", err)
	}

	if err := json.Unmarshal(replies, &d.Replies); err != nil {
		return nil, fmt.Errorf("decode replies: %w", err)
	}
	if err := json.Unmarshal(likes, &d.Likes); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}

	return &d, nil
}

func marshalEmbedded(d *discussion.Discussion) (replies, likes []byte, err error) {
	if d.Replies == nil {
		d.Replies = []discussion.Reply{}
	}
	if d.Likes == nil {
		d.Likes = []uuid.UUID{}
	}

	if replies, err = json.Marshal(d.Replies); err != nil {
		return nil, nil, fmt.Errorf("encode replies: %w", err)
	}
	if likes, err = json.Marshal(d.Likes); err != nil {
		return nil, nil, fmt.Errorf("encode likes: %w", err)
	}
	return replies, likes, nil
}
