package readstore

import (
	"context"
	"errors"
	"time"

	"class-booking/internal/infra"
	"class-booking/internal/infra/db"
	"class-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const classViewSelect = `SELECT c.id, c.title, c.description, c.instructor, c.max_capacity,
	c.scheduled_at, c.duration_minutes, c.created_by, c.created_at, c.updated_at,
	COUNT(b.id) AS booked_count
	FROM classes c
	LEFT JOIN bookings b ON b.class_id = c.id AND b.status = 'confirmed'`

const getClassView = classViewSelect + `
	WHERE c.id = $1
	GROUP BY c.id`

const listUpcomingClassViews = classViewSelect + `
	WHERE c.scheduled_at > $1
	GROUP BY c.id
	ORDER BY c.scheduled_at ASC, c.id`

type ClassReadStore struct {
	db db.DBTX
}

func NewClassReadStore(db db.DBTX) *ClassReadStore {
	return &ClassReadStore{db: db}
}

func (r *ClassReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClassView, error) {
	view, err := scanClassView(r.db.QueryRow(ctx, getClassView, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("class not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find class by ID", err)
	}
	return view, nil
}

func (r *ClassReadStore) FindUpcoming(ctx context.Context, after time.Time) ([]*queries.ClassView, error) {
	rows, err := r.db.Query(ctx, listUpcomingClassViews, after)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming classes", err)
	}
	defer rows.Close()

	var result []*queries.ClassView
	for rows.Next() {
		view, err := scanClassView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan class", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate classes", err)
	}
	return result, nil
}

func scanClassView(row pgx.Row) (*queries.ClassView, error) {
	var (
		v      queries.ClassView
		booked int64
	)
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.Instructor, &v.MaxCapacity,
		&v.ScheduledAt, &v.DurationMinutes, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt,
		&booked,
	)
	if err != nil {
		return nil, err
	}
	v.BookedCount = int(booked)
	return &v, nil
}
