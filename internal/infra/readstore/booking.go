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

// Driven from classes like listConfirmedParticipants: no row for an unknown or
// deleted class, so orphaned bookings are never counted.
const countConfirmed = `SELECT COUNT(b.id)
	FROM classes c
	LEFT JOIN bookings b ON b.class_id = c.id AND b.status = 'confirmed'
	WHERE c.id = $1
	GROUP BY c.id`

// Inner join: bookings of deleted classes are left out.
const listBookingsByUser = `SELECT b.id, b.user_id, b.class_id, b.status, b.booked_at, b.updated_at,
	c.title, c.instructor, c.scheduled_at, c.duration_minutes
	FROM bookings b
	JOIN classes c ON c.id = b.class_id
	WHERE b.user_id = $1
	ORDER BY c.scheduled_at ASC, b.id`

// Driven from classes so that an unknown class yields no rows at all while a
// class without participants yields one row of NULLs.
const listConfirmedParticipants = `SELECT b.id, b.user_id, b.booked_at
	FROM classes c
	LEFT JOIN bookings b ON b.class_id = c.id AND b.status = 'confirmed'
	WHERE c.id = $1
	ORDER BY b.booked_at ASC NULLS LAST, b.id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) CountConfirmed(ctx context.Context, classID uuid.UUID) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, countConfirmed, classID).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("class not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to count confirmed bookings", err)
	}
	return count, nil
}

func (r *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, listBookingsByUser, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		var v queries.BookingView
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.ClassID, &v.Status, &v.BookedAt, &v.UpdatedAt,
			&v.ClassTitle, &v.ClassInstructor, &v.ScheduledAt, &v.DurationMinutes,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

func (r *BookingReadStore) FindConfirmedParticipants(ctx context.Context, classID uuid.UUID) ([]*queries.ParticipantView, error) {
	rows, err := r.db.Query(ctx, listConfirmedParticipants, classID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list participants", err)
	}
	defer rows.Close()

	found := false
	result := []*queries.ParticipantView{}
	for rows.Next() {
		found = true
		var (
			bookingID, userID *uuid.UUID
			bookedAt          *time.Time
		)
		if err := rows.Scan(&bookingID, &userID, &bookedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan participant", err)
		}
		if bookingID == nil {
			continue
		}
		result = append(result, &queries.ParticipantView{
			BookingID: *bookingID,
			UserID:    *userID,
			BookedAt:  *bookedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate participants", err)
	}
	if !found {
		return nil, infra.WrapRepoErr("class not found", nil, infra.KindNotFound)
	}
	return result, nil
}
