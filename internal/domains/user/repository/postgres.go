package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bookclub-backend/internal/domains/user"
	"bookclub-backend/pkg/cache"
	"bookclub-backend/pkg/database"
	"bookclub-backend/pkg/logger"
)

const (
	userCacheKeyPrefix = "user:"
	userCacheTTL       = 15 * time.Minute
)

type postgresUserRepository struct {
	db    *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresUserRepository creates a user repository backed by Postgres with
// a Redis read-through cache on FindByID.
func NewPostgresUserRepository(db *pgxpool.Pool, c cache.Cache) user.Repository {
	return &postgresUserRepository{db: db, cache: c}
}

func userCacheKey(id uuid.UUID) string {
	return userCacheKeyPrefix + id.String()
}

func (r *postgresUserRepository) Insert(ctx context.Context, u *user.User) (uuid.UUID, error) {
	currentlyReading, shelves, badges, stats, err := marshalEmbedded(u)
	if err != nil {
		return uuid.Nil, err
	}

	query := `
		INSERT INTO users (
			name, email, password_hash, avatar, bio, location,
			favorite_genres, currently_reading, shelves, badges, stats,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Avatar, u.Bio, u.Location,
		u.FavoriteGenres, currentlyReading, shelves, badges, stats,
		u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, user.ErrEmailAlreadyExists
		}
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}

	return u.ID, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var cached user.User
	found, err := r.cache.Get(ctx, userCacheKey(id), &cached)
	if err != nil {
		logger.Warn("user cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	u, err := r.scanUser(r.db.QueryRow(ctx, selectUserQuery+" WHERE id = $1", id))
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, userCacheKey(id), u, userCacheTTL); err != nil {
		logger.Warn("user cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return u, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, selectUserQuery+" WHERE email = $1", email))
}

func (r *postgresUserRepository) Update(ctx context.Context, u *user.User) error {
	currentlyReading, shelves, badges, stats, err := marshalEmbedded(u)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET name = $2, avatar = $3, bio = $4, location = $5,
		    favorite_genres = $6, currently_reading = $7, shelves = $8,
		    badges = $9, stats = $10, is_active = $11, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		u.ID, u.Name, u.Avatar, u.Bio, u.Location,
		u.FavoriteGenres, currentlyReading, shelves, badges, stats,
		u.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, u.ID)
	return nil
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	r.invalidate(ctx, id)
	return nil
}

// ReconcileReviewCounts recounts reviews per user from the reviews table and
// fixes any drifted stats.reviews_written counter. Only the review counter is
// touched; other counters have no independent ledger to recount from.
func (r *postgresUserRepository) ReconcileReviewCounts(ctx context.Context, limit int) (int, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (int, error) {
		query := `
			WITH actual AS (
				SELECT u.id, COUNT(rv.id) AS cnt
				FROM users u
				LEFT JOIN reviews rv ON rv.user_id = u.id
				GROUP BY u.id
			)
			UPDATE users u
			SET stats = jsonb_set(u.stats, '{reviews_written}', to_jsonb(a.cnt)),
			    updated_at = NOW()
			FROM actual a
			WHERE u.id = a.id
			  AND (u.stats->>'reviews_written')::int <> a.cnt
			  AND u.id IN (
			      SELECT u2.id FROM users u2
			      JOIN actual a2 ON a2.id = u2.id
			      WHERE (u2.stats->>'reviews_written')::int <> a2.cnt
			      LIMIT $1
			  )
			RETURNING u.id`

		rows, err := tx.Query(ctx, query, limit)
		if err != nil {
			return 0, fmt.Errorf("reconcile review counts: %w", err)
		}
		defer rows.Close()

		fixed := 0
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				return 0, err
			}
			r.invalidate(ctx, id)
			fixed++
		}
		return fixed, rows.Err()
	})
}

func (r *postgresUserRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, userCacheKey(id)); err != nil {
		logger.Warn("user cache invalidation failed", map[string]interface{}{
			"user_id": id.String(),
			"error":   err.Error(),
		})
	}
}

const selectUserQuery = `
	SELECT id, name, email, password_hash, avatar, bio, location,
	       favorite_genres, currently_reading, shelves, badges, stats,
	       is_active, last_login, created_at, updated_at
	FROM users`

func (r *postgresUserRepository) scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var currentlyReading, shelves, badges, stats []byte

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.Bio, &u.Location,
		&u.FavoriteGenres, &currentlyReading, &shelves, &badges, &stats,
		&u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if err := json.Unmarshal(currentlyReading, &u.CurrentlyReading); err != nil {
		return nil, fmt.Errorf("decode currently_reading: %w", err)
	}
	if err := json.Unmarshal(shelves, &u.Shelves); err != nil {
		return nil, fmt.Errorf("decode shelves: %w", err)
	}
	if err := json.Unmarshal(badges, &u.Badges); err != nil {
		return nil, fmt.Errorf("decode badges: %w", err)
	}
	if err := json.Unmarshal(stats, &u.Stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	return &u, nil
}

func marshalEmbedded(u *user.User) (currentlyReading, shelves, badges, stats []byte, err error) {
	if u.FavoriteGenres == nil {
		u.FavoriteGenres = pq.StringArray{}
	}
	if u.CurrentlyReading == nil {
		u.CurrentlyReading = []user.ReadingEntry{}
	}
	if u.Badges == nil {
		u.Badges = []user.Badge{}
	}
	ensureShelves(&u.Shelves)

	if currentlyReading, err = json.Marshal(u.CurrentlyReading); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode currently_reading: %w", err)
	}
	if shelves, err = json.Marshal(u.Shelves); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode shelves: %w", err)
	}
	if badges, err = json.Marshal(u.Badges); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode badges: %w", err)
	}
	if stats, err = json.Marshal(u.Stats); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode stats: %w", err)
	}
	return currentlyReading, shelves, badges, stats, nil
}

func ensureShelves(s *user.Shelves) {
	if s.ToRead == nil {
		s.ToRead = []uuid.UUID{}
	}
	if s.Read == nil {
		s.Read = []user.ReadShelfEntry{}
	}
	if s.DNF == nil {
		s.DNF = []uuid.UUID{}
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
