package booking

import (
	"time"

	"github.com/google/uuid"
)

// ClassSpec is the part of a class the lifecycle needs to decide on a booking.
type ClassSpec struct {
	ID          uuid.UUID
	Capacity    int
	ScheduledAt time.Time
}

// EnsureNotStarted fails once the class start time is at or before now.
func EnsureNotStarted(class ClassSpec, now time.Time) error {
	if !class.ScheduledAt.After(now) {
		return ErrClassAlreadyStarted
	}
	return nil
}

// EnsureNotBooked fails if existing is a confirmed booking.
func EnsureNotBooked(existing *Booking) error {
	if existing != nil && existing.IsConfirmed() {
		return ErrAlreadyBooked
	}
	return nil
}

// EnsureSpotAvailable fails when confirmed bookings already fill the class.
// confirmedCount must not include the caller.
func EnsureSpotAvailable(class ClassSpec, confirmedCount int) error {
	if confirmedCount >= class.Capacity {
		return ErrClassFull
	}
	return nil
}

// Book applies the Book event to the (user, class) record. existing is nil
// when no record exists yet. The checks run in a fixed order: timing, current
// status, then capacity. The returned booking is either a new record or the
// reactivated existing one, which keeps its id.
func Book(
	existing *Booking,
	class ClassSpec,
	confirmedCount int,
	userID uuid.UUID,
	now time.Time,
) (*Booking, Transition, error) {
	if err := EnsureNotStarted(class, now); err != nil {
		return nil, "", err
	}
	if err := EnsureNotBooked(existing); err != nil {
		return nil, "", err
	}
	if err := EnsureSpotAvailable(class, confirmedCount); err != nil {
		return nil, "", err
	}

	if existing == nil {
		return &Booking{
			id:       uuid.New(),
			userID:   userID,
			classID:  class.ID,
			status:   StatusConfirmed,
			bookedAt: now,
		}, TransitionCreated, nil
	}

	reactivated := *existing
	reactivated.status = StatusConfirmed
	reactivated.bookedAt = now
	updatedAt := now
	reactivated.updatedAt = &updatedAt
	return &reactivated, TransitionReactivated, nil
}

// Cancel applies the Cancel event. Class timing is not considered.
func Cancel(existing *Booking, now time.Time) (*Booking, error) {
	if existing == nil {
		return nil, ErrBookingNotFound
	}
	if !existing.IsConfirmed() {
		return nil, ErrAlreadyCancelled
	}

	cancelled := *existing
	cancelled.status = StatusCancelled
	updatedAt := now
	cancelled.updatedAt = &updatedAt
	return &cancelled, nil
}
