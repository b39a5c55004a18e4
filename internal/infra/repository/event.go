package repository

import (
	"context"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/infra"
	"class-booking/internal/infra/db"
	"class-booking/internal/infra/record"

	"github.com/google/uuid"
)

const insertBookingEvent = `INSERT INTO booking_events
	(id, event_type, booking_id, user_id, class_id, payload, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

const selectPendingEvents = `SELECT id, event_type, booking_id, user_id, class_id, payload, occurred_at
	FROM booking_events
	WHERE published_at IS NULL
	ORDER BY occurred_at, id
	LIMIT $1`

const markEventsPublished = `UPDATE booking_events SET published_at = $2
	WHERE id = ANY($1) AND published_at IS NULL`

type EventRepository struct {
	db db.DBTX
}

func NewEventRepository(db db.DBTX) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Append(ctx context.Context, b *booking.Booking, transition booking.Transition, occurredAt time.Time) error {
	rec, err := record.NewEvent(b, transition, occurredAt)
	if err != nil {
		return infra.WrapRepoErr("invalid booking event", err, infra.KindValidation)
	}

	_, err = r.db.Exec(ctx, insertBookingEvent,
		rec.ID, rec.Type, rec.BookingID, rec.UserID, rec.ClassID, []byte(rec.Payload), rec.OccurredAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append booking event", err)
	}
	return nil
}

// Pending returns up to limit unpublished events, oldest first.
func (r *EventRepository) Pending(ctx context.Context, limit int) ([]record.Event, error) {
	rows, err := r.db.Query(ctx, selectPendingEvents, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query pending events", err)
	}
	defer rows.Close()

	var events []record.Event
	for rows.Next() {
		var (
			rec     record.Event
			payload []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.BookingID, &rec.UserID, &rec.ClassID, &payload, &rec.OccurredAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking event", err)
		}
		rec.Payload = payload
		events = append(events, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking events", err)
	}
	return events, nil
}

func (r *EventRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, markEventsPublished, ids, at); err != nil {
		return infra.WrapRepoErr("failed to mark events published", err)
	}
	return nil
}
