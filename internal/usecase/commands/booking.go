package commands

import (
	"context"
	"log/slog"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/infra"
	"class-booking/internal/pkg/clock"
	"class-booking/internal/pkg/errs"
	"class-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingOutcome struct {
	BookingID   uuid.UUID
	ClassID     uuid.UUID
	UserID      uuid.UUID
	BookedAt    time.Time
	Reactivated bool
}

type BookingCommands interface {
	AttemptBook(ctx context.Context, userID, classID uuid.UUID) (*BookingOutcome, error)
	CancelBooking(ctx context.Context, userID, classID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clk}
}

// AttemptBook runs the whole decision inside one transaction that holds the
// class row lock, so the confirmed count it reads cannot change before the
// write commits.
func (uc *bookingCommandsImpl) AttemptBook(ctx context.Context, userID, classID uuid.UUID) (*BookingOutcome, error) {
	var (
		outcome    *BookingOutcome
		transition booking.Transition
	)

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cls, err := tx.Classes().LockByID(ctx, classID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return booking.ErrClassNotFound.WithCause(err)
			}
			return err
		}

		now := uc.clock.Now()
		spec := booking.ClassSpec{
			ID:          cls.ID(),
			Capacity:    cls.Capacity(),
			ScheduledAt: cls.ScheduledAt(),
		}
		if err := booking.EnsureNotStarted(spec, now); err != nil {
			return err
		}

		existing, err := findExisting(ctx, tx.Bookings().FindByUserAndClass, userID, classID)
		if err != nil {
			return err
		}
		if err := booking.EnsureNotBooked(existing); err != nil {
			return err
		}

		confirmed, err := tx.Bookings().CountConfirmed(ctx, classID)
		if err != nil {
			return err
		}

		next, tr, err := booking.Book(existing, spec, confirmed, userID, now)
		if err != nil {
			return err
		}

		if tr == booking.TransitionCreated {
			err = tx.Bookings().Insert(ctx, next)
		} else {
			err = tx.Bookings().Update(ctx, next)
		}
		if err != nil {
			return err
		}

		if err := tx.Events().Append(ctx, next, tr, now); err != nil {
			return errs.Mark(err, errs.ErrEventAppendFailed)
		}

		transition = tr
		outcome = &BookingOutcome{
			BookingID:   next.ID(),
			ClassID:     next.ClassID(),
			UserID:      next.UserID(),
			BookedAt:    next.BookedAt(),
			Reactivated: tr == booking.TransitionReactivated,
		}
		return nil
	})
	if err != nil {
		return nil, translateTxError(err)
	}

	slog.InfoContext(ctx, "booking "+string(transition),
		"booking_id", outcome.BookingID,
		"class_id", classID,
		"user_id", userID)
	return outcome, nil
}

// CancelBooking is allowed regardless of class timing.
func (uc *bookingCommandsImpl) CancelBooking(ctx context.Context, userID, classID uuid.UUID) error {
	var cancelledID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := findExisting(ctx, tx.Bookings().LockByUserAndClass, userID, classID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		cancelled, err := booking.Cancel(existing, now)
		if err != nil {
			return err
		}

		if err := tx.Bookings().Update(ctx, cancelled); err != nil {
			return err
		}
		if err := tx.Events().Append(ctx, cancelled, booking.TransitionCancelled, now); err != nil {
			return errs.Mark(err, errs.ErrEventAppendFailed)
		}

		cancelledID = cancelled.ID()
		return nil
	})
	if err != nil {
		return translateTxError(err)
	}

	slog.InfoContext(ctx, "booking cancelled",
		"booking_id", cancelledID,
		"class_id", classID,
		"user_id", userID)
	return nil
}

type bookingFinder func(ctx context.Context, userID, classID uuid.UUID) (*booking.Booking, error)

// findExisting maps a missing record to nil, the Absent state.
func findExisting(ctx context.Context, find bookingFinder, userID, classID uuid.UUID) (*booking.Booking, error) {
	existing, err := find(ctx, userID, classID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

// translateTxError keeps booking errors as they are and turns transient
// storage failures that survived the retry budget into ErrConflict.
func translateTxError(err error) error {
	if _, ok := booking.AsError(err); ok {
		return err
	}
	if errs.Is(err, shared.ErrMaxRetriesExceeded) || infra.IsRetryable(err) {
		slog.Warn("booking transaction gave up on concurrent updates", "error", err.Error())
		return booking.ErrConflict.WithCause(err)
	}
	return err
}
