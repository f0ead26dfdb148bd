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

	"bookclub-backend/internal/domains/event"
)

type postgresEventRepository struct {
	db *pgxpool.Pool
}

func NewPostgresEventRepository(db *pgxpool.Pool) event.Repository {
	return &postgresEventRepository{db: db}
}

const selectEventQuery = `
	SELECT id, organizer, title, description, date, location,
	       max_attendees, attendees, interested, price, is_cancelled,
	       created_at, updated_at
	FROM events`

func (r *postgresEventRepository) Insert(ctx context.Context, e *event.Event) (uuid.UUID, error) {
	location, attendees, interested, err := marshalEmbedded(e)
	if err != nil {
		return uuid.Nil, err
	}

	query := `
		INSERT INTO events (
			organizer, title, description, date, location,
			max_attendees, attendees, interested, price, is_cancelled
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		e.Organizer, e.Title, e.Description, e.Date, location,
		e.MaxAttendees, attendees, interested, e.Price, e.IsCancelled,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert event: %w", err)
	}

	return e.ID, nil
}

func (r *postgresEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	return scanEvent(r.db.QueryRow(ctx, selectEventQuery+" WHERE id = $1", id))
}

func (r *postgresEventRepository) List(ctx context.Context, filter event.ListFilter) ([]*event.Event, int, error) {
	filter.Normalize()

	conditions := []string{"is_cancelled = FALSE"}
	args := []interface{}{}
	argn := 1

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("location->>'city' ILIKE $%d", argn))
		args = append(args, filter.City)
		argn++
	}
	if filter.Upcoming {
		conditions = append(conditions, "date >= NOW()")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM events"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := selectEventQuery + where +
		fmt.Sprintf(" ORDER BY date ASC LIMIT $%d OFFSET $%d", argn, argn+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *postgresEventRepository) Update(ctx context.Context, e *event.Event) error {
	location, attendees, interested, err := marshalEmbedded(e)
	if err != nil {
		return err
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, location = $5,
		    max_attendees = $6, attendees = $7, interested = $8,
		    price = $9, is_cancelled = $10, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		e.ID, e.Title, e.Description, e.Date, location,
		e.MaxAttendees, attendees, interested, e.Price, e.IsCancelled,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*event.Event, error) {
	var e event.Event
	var location, attendees, interested []byte

	err := row.Scan(
		&e.ID, &e.Organizer, &e.Title, &e.Description, &e.Date, &location,
		&e.MaxAttendees, &attendees, &interested, &e.Price, &e.IsCancelled,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	if err := json.Unmarshal(location, &e.Location); err != nil {
		return nil, fmt.Errorf("decode location: %w", err)
	}
	if err := json.Unmarshal(attendees, &e.Attendees); err != nil {
		return nil, fmt.Errorf("decode attendees: %w", err)
	}
	if err := json.Unmarshal(interested, &e.Interested); err != nil {
		return nil, fmt.Errorf("decode interested: %w", err)
	}

	return &e, nil
}

func marshalEmbedded(e *event.Event) (location, attendees, interested []byte, err error) {
	if e.Attendees == nil {
		e.Attendees = []event.Attendee{}
	}
	if e.Interested == nil {
		e.Interested = []uuid.UUID{}
	}

	if location, err = json.Marshal(e.Location); err != nil {
		return nil, nil, nil, fmt.Errorf("encode location: %w", err)
	}
	if attendees, err = json.Marshal(e.Attendees); err != nil {
		return nil, nil, nil, fmt.Errorf("encode attendees: %w", err)
	}
	if interested, err = json.Marshal(e.Interested); err != nil {
		return nil, nil, nil, fmt.Errorf("encode interested: %w", err)
	}
	return location, attendees, interested, nil
}
