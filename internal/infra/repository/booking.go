package repository

import (
	"context"
	"errors"

	"class-booking/internal/domain/booking"
	"class-booking/internal/infra"
	"class-booking/internal/infra/db"
	"class-booking/internal/infra/record"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, user_id, class_id, status, booked_at, updated_at`

const findBookingByUserAndClass = `SELECT ` + bookingColumns + `
	FROM bookings WHERE user_id = $1 AND class_id = $2`

const lockBookingByUserAndClass = findBookingByUserAndClass + ` FOR UPDATE`

const countConfirmedBookings = `SELECT COUNT(*) FROM bookings
	WHERE class_id = $1 AND status = 'confirmed'`

const insertBooking = `INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6)`

const updateBooking = `UPDATE bookings
	SET status = $2, booked_at = $3, updated_at = $4
	WHERE id = $1`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) FindByUserAndClass(ctx context.Context, userID, classID uuid.UUID) (*booking.Booking, error) {
	return r.find(ctx, findBookingByUserAndClass, userID, classID)
}

func (r *BookingRepository) LockByUserAndClass(ctx context.Context, userID, classID uuid.UUID) (*booking.Booking, error) {
	return r.find(ctx, lockBookingByUserAndClass, userID, classID)
}

func (r *BookingRepository) find(ctx context.Context, query string, userID, classID uuid.UUID) (*booking.Booking, error) {
	var rec record.Booking
	err := r.db.QueryRow(ctx, query, userID, classID).Scan(
		&rec.ID, &rec.UserID, &rec.ClassID, &rec.Status, &rec.BookedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return rec.ToDomain(), nil
}

func (r *BookingRepository) CountConfirmed(ctx context.Context, classID uuid.UUID) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, countConfirmedBookings, classID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count confirmed bookings", err)
	}
	return count, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	rec, err := record.FromBooking(b)
	if err != nil {
		return infra.WrapRepoErr("invalid booking record", err, infra.KindValidation)
	}

	_, err = r.db.Exec(ctx, insertBooking,
		rec.ID, rec.UserID, rec.ClassID, rec.Status, rec.BookedAt, rec.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	rec, err := record.FromBooking(b)
	if err != nil {
		return infra.WrapRepoErr("invalid booking record", err, infra.KindValidation)
	}

	tag, err := r.db.Exec(ctx, updateBooking, rec.ID, rec.Status, rec.BookedAt, rec.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
