//go:build unit

package booking_test

import (
	"testing"
	"time"

	"class-booking/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func upcomingClass(capacity int) booking.ClassSpec {
	return booking.ClassSpec{
		ID:          uuid.New(),
		Capacity:    capacity,
		ScheduledAt: now.Add(24 * time.Hour),
	}
}

func TestBook(t *testing.T) {
	userID := uuid.New()

	t.Run("absent record becomes confirmed", func(t *testing.T) {
		class := upcomingClass(10)

		got, transition, err := booking.Book(nil, class, 3, userID, now)

		require.NoError(t, err)
		assert.Equal(t, booking.TransitionCreated, transition)
		assert.NotEqual(t, uuid.Nil, got.ID())
		assert.Equal(t, userID, got.UserID())
		assert.Equal(t, class.ID, got.ClassID())
		assert.Equal(t, booking.StatusConfirmed, got.Status())
		assert.Equal(t, now, got.BookedAt())
		assert.Nil(t, got.UpdatedAt())
	})

	t.Run("cancelled record is reactivated in place", func(t *testing.T) {
		class := upcomingClass(10)
		bookedAt := now.Add(-48 * time.Hour)
		existing := booking.ReconstructBooking(uuid.New(), userID, class.ID, booking.StatusCancelled, bookedAt, nil)

		got, transition, err := booking.Book(existing, class, 0, userID, now)

		require.NoError(t, err)
		assert.Equal(t, booking.TransitionReactivated, transition)
		assert.Equal(t, existing.ID(), got.ID())
		assert.Equal(t, booking.StatusConfirmed, got.Status())
		assert.Equal(t, now, got.BookedAt())
		require.NotNil(t, got.UpdatedAt())
		assert.Equal(t, now, *got.UpdatedAt())
		assert.Equal(t, booking.StatusCancelled, existing.Status(), "existing record must not be mutated")
	})

	t.Run("last spot can be taken", func(t *testing.T) {
		_, _, err := booking.Book(nil, upcomingClass(2), 1, userID, now)
		assert.NoError(t, err)
	})

	cases := []struct {
		name      string
		existing  func(class booking.ClassSpec) *booking.Booking
		class     booking.ClassSpec
		confirmed int
		want      error
	}{
		{
			name:  "class starting now is already started",
			class: booking.ClassSpec{ID: uuid.New(), Capacity: 5, ScheduledAt: now},
			want:  booking.ErrClassAlreadyStarted,
		},
		{
			name:  "class in the past is already started",
			class: booking.ClassSpec{ID: uuid.New(), Capacity: 5, ScheduledAt: now.Add(-time.Minute)},
			want:  booking.ErrClassAlreadyStarted,
		},
		{
			name:  "confirmed record is already booked",
			class: upcomingClass(5),
			existing: func(class booking.ClassSpec) *booking.Booking {
				return booking.ReconstructBooking(uuid.New(), userID, class.ID, booking.StatusConfirmed, now, nil)
			},
			want: booking.ErrAlreadyBooked,
		},
		{
			name:      "full class rejects new booking",
			class:     upcomingClass(2),
			confirmed: 2,
			want:      booking.ErrClassFull,
		},
		{
			name:      "full class rejects reactivation",
			class:     upcomingClass(1),
			confirmed: 1,
			existing: func(class booking.ClassSpec) *booking.Booking {
				return booking.ReconstructBooking(uuid.New(), userID, class.ID, booking.StatusCancelled, now, nil)
			},
			want: booking.ErrClassFull,
		},
		{
			name:      "started check wins over already booked",
			class:     booking.ClassSpec{ID: uuid.New(), Capacity: 1, ScheduledAt: now.Add(-time.Hour)},
			confirmed: 1,
			existing: func(class booking.ClassSpec) *booking.Booking {
				return booking.ReconstructBooking(uuid.New(), userID, class.ID, booking.StatusConfirmed, now, nil)
			},
			want: booking.ErrClassAlreadyStarted,
		},
		{
			name:      "already booked wins over full",
			class:     upcomingClass(1),
			confirmed: 1,
			existing: func(class booking.ClassSpec) *booking.Booking {
				return booking.ReconstructBooking(uuid.New(), userID, class.ID, booking.StatusConfirmed, now, nil)
			},
			want: booking.ErrAlreadyBooked,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var existing *booking.Booking
			if tc.existing != nil {
				existing = tc.existing(tc.class)
			}

			got, _, err := booking.Book(existing, tc.class, tc.confirmed, userID, now)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, got)
		})
	}
}

func TestCancel(t *testing.T) {
	userID, classID := uuid.New(), uuid.New()

	t.Run("confirmed record becomes cancelled", func(t *testing.T) {
		id := uuid.New()
		existing := booking.ReconstructBooking(id, userID, classID, booking.StatusConfirmed, now.Add(-time.Hour), nil)

		got, err := booking.Cancel(existing, now)

		require.NoError(t, err)
		updatedAt := now
		want := booking.ReconstructBooking(id, userID, classID, booking.StatusCancelled, now.Add(-time.Hour), &updatedAt)
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(booking.Booking{})); diff != "" {
			t.Errorf("cancelled booking mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("absent record is not found", func(t *testing.T) {
		_, err := booking.Cancel(nil, now)
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})

	t.Run("cancelled record is already cancelled", func(t *testing.T) {
		existing := booking.ReconstructBooking(uuid.New(), userID, classID, booking.StatusCancelled, now, nil)
		_, err := booking.Cancel(existing, now)
		assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	})
}

func TestBookCancelBookKeepsOneRecord(t *testing.T) {
	userID := uuid.New()
	class := upcomingClass(3)

	first, _, err := booking.Book(nil, class, 0, userID, now)
	require.NoError(t, err)

	cancelled, err := booking.Cancel(first, now.Add(time.Minute))
	require.NoError(t, err)

	later := now.Add(time.Hour)
	again, transition, err := booking.Book(cancelled, class, 0, userID, later)
	require.NoError(t, err)

	assert.Equal(t, booking.TransitionReactivated, transition)
	assert.Equal(t, first.ID(), again.ID())
	assert.Equal(t, later, again.BookedAt())
}

func TestError(t *testing.T) {
	t.Run("wrapped error keeps code identity", func(t *testing.T) {
		cause := assert.AnError
		err := booking.ErrConflict.WithCause(cause)

		assert.ErrorIs(t, err, booking.ErrConflict)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, booking.ErrClassFull)

		got, ok := booking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, booking.KindConflict, got.Kind)
	})

	t.Run("kinds", func(t *testing.T) {
		assert.Equal(t, booking.KindNotFound, booking.ErrClassNotFound.Kind)
		assert.Equal(t, booking.KindNotFound, booking.ErrBookingNotFound.Kind)
		assert.Equal(t, booking.KindPreconditionFailed, booking.ErrClassAlreadyStarted.Kind)
		assert.Equal(t, booking.KindPreconditionFailed, booking.ErrAlreadyBooked.Kind)
		assert.Equal(t, booking.KindPreconditionFailed, booking.ErrAlreadyCancelled.Kind)
		assert.Equal(t, booking.KindCapacity, booking.ErrClassFull.Kind)
	})

	t.Run("transition event types", func(t *testing.T) {
		assert.Equal(t, "booking.confirmed", booking.TransitionCreated.EventType())
		assert.Equal(t, "booking.reactivated", booking.TransitionReactivated.EventType())
		assert.Equal(t, "booking.cancelled", booking.TransitionCancelled.EventType())
	})
}
