//go:build unit

package sqlitestore_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/infra/sqlitestore"
	"class-booking/internal/pkg/clock"
	"class-booking/internal/pkg/errs"
	"class-booking/internal/usecase/commands"
	"class-booking/internal/usecase/queries"
	"class-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	clock    *clock.MockClock
	classes  commands.ClassCommands
	bookings commands.BookingCommands
	queries  queries.BookingQueries
	catalog  queries.ClassQueries
	events   *sqlitestore.EventRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, cleanup, err := sqlitestore.Open(filepath.Join(t.TempDir(), "booking.db"))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	clk := clock.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	uow := sqlitestore.NewUoW(db, shared.RetryPolicy{MaxRetries: 3, Base: time.Millisecond})
	bookingReads := sqlitestore.NewBookingReadStore(db)

	return &fixture{
		db:       db,
		clock:    clk,
		classes:  commands.NewClassCommands(uow, clk),
		bookings: commands.NewBookingCommands(uow, clk),
		queries:  queries.NewBookingQueries(bookingReads),
		catalog:  queries.NewClassQueries(sqlitestore.NewClassReadStore(db), uow, clk),
		events:   sqlitestore.NewEventRepository(db),
	}
}

func (f *fixture) createClass(t *testing.T, capacity int, startsIn time.Duration) uuid.UUID {
	t.Helper()
	ids, err := f.classes.CreateClass(context.Background(), commands.CreateClassInput{
		Title:       "Spin",
		MaxCapacity: capacity,
		ScheduledAt: f.clock.Now().Add(startsIn),
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)
	return ids[0]
}

func attemptConcurrently(f *fixture, classID uuid.UUID, users []uuid.UUID) []error {
	results := make([]error, len(users))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, u := range users {
		wg.Add(1)
		go func(i int, u uuid.UUID) {
			defer wg.Done()
			<-start
			_, results[i] = f.bookings.AttemptBook(context.Background(), u, classID)
		}(i, u)
	}
	close(start)
	wg.Wait()
	return results
}

func newUsers(n int) []uuid.UUID {
	users := make([]uuid.UUID, n)
	for i := range users {
		users[i] = uuid.New()
	}
	return users
}

func TestConcurrentBookingNeverExceedsCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		users    int
	}{
		{name: "capacity 2 with three users", capacity: 2, users: 3},
		{name: "capacity 5 with twenty users", capacity: 5, users: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			classID := f.createClass(t, tt.capacity, 24*time.Hour)

			results := attemptConcurrently(f, classID, newUsers(tt.users))

			succeeded, full := 0, 0
			for _, err := range results {
				switch {
				case err == nil:
					succeeded++
				case assert.ErrorIs(t, err, booking.ErrClassFull):
					full++
				}
			}
			assert.Equal(t, tt.capacity, succeeded)
			assert.Equal(t, tt.users-tt.capacity, full)

			count, err := f.queries.GetConfirmedCount(context.Background(), classID)
			require.NoError(t, err)
			assert.Equal(t, tt.capacity, count)
		})
	}
}

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("book twice is AlreadyBooked", func(t *testing.T) {
		f := newFixture(t)
		classID := f.createClass(t, 3, time.Hour)
		user := uuid.New()

		_, err := f.bookings.AttemptBook(ctx, user, classID)
		require.NoError(t, err)
		_, err = f.bookings.AttemptBook(ctx, user, classID)
		assert.ErrorIs(t, err, booking.ErrAlreadyBooked)
	})

	t.Run("book, cancel, book reuses the record", func(t *testing.T) {
		f := newFixture(t)
		classID := f.createClass(t, 1, time.Hour)
		user := uuid.New()

		first, err := f.bookings.AttemptBook(ctx, user, classID)
		require.NoError(t, err)
		require.NoError(t, f.bookings.CancelBooking(ctx, user, classID))

		count, err := f.queries.GetConfirmedCount(ctx, classID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		f.clock.Add(10 * time.Minute)
		second, err := f.bookings.AttemptBook(ctx, user, classID)
		require.NoError(t, err)
		assert.Equal(t, first.BookingID, second.BookingID)
		assert.True(t, second.Reactivated)
		assert.True(t, second.BookedAt.After(first.BookedAt))

		mine, err := f.queries.ListForUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, booking.StatusConfirmed.String(), mine[0].Status)
	})

	t.Run("a cancelled spot can be taken by someone else", func(t *testing.T) {
		f := newFixture(t)
		classID := f.createClass(t, 1, time.Hour)
		alice, bob := uuid.New(), uuid.New()

		_, err := f.bookings.AttemptBook(ctx, alice, classID)
		require.NoError(t, err)
		_, err = f.bookings.AttemptBook(ctx, bob, classID)
		require.ErrorIs(t, err, booking.ErrClassFull)

		require.NoError(t, f.bookings.CancelBooking(ctx, alice, classID))
		_, err = f.bookings.AttemptBook(ctx, bob, classID)
		require.NoError(t, err)
	})

	t.Run("past class rejects booking but allows cancel", func(t *testing.T) {
		f := newFixture(t)
		classID := f.createClass(t, 2, time.Hour)
		user := uuid.New()

		_, err := f.bookings.AttemptBook(ctx, user, classID)
		require.NoError(t, err)

		f.clock.Add(2 * time.Hour)
		_, err = f.bookings.AttemptBook(ctx, uuid.New(), classID)
		assert.ErrorIs(t, err, booking.ErrClassAlreadyStarted)
		assert.NoError(t, f.bookings.CancelBooking(ctx, user, classID))
	})

	t.Run("cancel errors", func(t *testing.T) {
		f := newFixture(t)
		classID := f.createClass(t, 2, time.Hour)
		user := uuid.New()

		assert.ErrorIs(t, f.bookings.CancelBooking(ctx, user, classID), booking.ErrBookingNotFound)

		_, err := f.bookings.AttemptBook(ctx, user, classID)
		require.NoError(t, err)
		require.NoError(t, f.bookings.CancelBooking(ctx, user, classID))
		assert.ErrorIs(t, f.bookings.CancelBooking(ctx, user, classID), booking.ErrAlreadyCancelled)
	})

	t.Run("unknown class", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.bookings.AttemptBook(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, booking.ErrClassNotFound)

		_, err = f.queries.ListConfirmedForClass(ctx, uuid.New())
		assert.ErrorIs(t, err, booking.ErrClassNotFound)
	})
}

func TestClassCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted class hides its bookings", func(t *testing.T) {
		f := newFixture(t)
		kept := f.createClass(t, 2, 2*time.Hour)
		dropped := f.createClass(t, 2, time.Hour)
		user := uuid.New()

		for _, id := range []uuid.UUID{kept, dropped} {
			_, err := f.bookings.AttemptBook(ctx, user, id)
			require.NoError(t, err)
		}
		require.NoError(t, f.classes.DeleteClass(ctx, dropped))

		mine, err := f.queries.ListForUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, kept, mine[0].ClassID)

		assert.ErrorIs(t, f.classes.DeleteClass(ctx, dropped), booking.ErrClassNotFound)
	})

	t.Run("count of a deleted class is not found", func(t *testing.T) {
		f := newFixture(t)
		classID := f.createClass(t, 3, time.Hour)
		_, err := f.bookings.AttemptBook(ctx, uuid.New(), classID)
		require.NoError(t, err)

		n, err := f.queries.GetConfirmedCount(ctx, classID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		require.NoError(t, f.classes.DeleteClass(ctx, classID))

		_, err = f.queries.GetConfirmedCount(ctx, classID)
		assert.ErrorIs(t, err, booking.ErrClassNotFound)
		_, err = f.queries.ListConfirmedForClass(ctx, classID)
		assert.ErrorIs(t, err, booking.ErrClassNotFound)
	})

	t.Run("count of an unknown class is not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.queries.GetConfirmedCount(ctx, uuid.New())

		assert.ErrorIs(t, err, booking.ErrClassNotFound)
	})

	t.Run("detail count matches participants", func(t *testing.T) {
		f := newFixture(t)
		classID := f.createClass(t, 4, time.Hour)
		for _, u := range newUsers(3) {
			_, err := f.bookings.AttemptBook(ctx, u, classID)
			require.NoError(t, err)
		}

		detail, err := f.catalog.GetDetail(ctx, classID)

		require.NoError(t, err)
		assert.Equal(t, 3, detail.Class.BookedCount)
		assert.Len(t, detail.Participants, detail.Class.BookedCount)
		assert.Equal(t, 1, detail.Class.AvailableSpots())

		_, err = f.catalog.GetDetail(ctx, uuid.New())
		assert.ErrorIs(t, err, booking.ErrClassNotFound)
	})

	t.Run("upcoming list carries counts", func(t *testing.T) {
		f := newFixture(t)
		later := f.createClass(t, 3, 3*time.Hour)
		sooner := f.createClass(t, 1, time.Hour)
		_ = f.createClass(t, 1, -time.Hour)

		_, err := f.bookings.AttemptBook(ctx, uuid.New(), sooner)
		require.NoError(t, err)

		views, err := f.catalog.ListUpcoming(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, sooner, views[0].ID)
		assert.Equal(t, 0, views[0].AvailableSpots())
		assert.Equal(t, later, views[1].ID)
		assert.Equal(t, 3, views[1].AvailableSpots())
	})

	t.Run("capacity cannot drop below confirmed", func(t *testing.T) {
		f := newFixture(t)
		classID := f.createClass(t, 3, time.Hour)
		for i := 0; i < 2; i++ {
			_, err := f.bookings.AttemptBook(ctx, uuid.New(), classID)
			require.NoError(t, err)
		}

		one := 1
		err := f.classes.UpdateClass(ctx, classID, commands.UpdateClassInput{MaxCapacity: &one})
		assert.ErrorIs(t, err, booking.ErrCapacityBelowConfirmed)

		two := 2
		require.NoError(t, f.classes.UpdateClass(ctx, classID, commands.UpdateClassInput{MaxCapacity: &two}))
		_, err = f.bookings.AttemptBook(ctx, uuid.New(), classID)
		assert.ErrorIs(t, err, booking.ErrClassFull)
	})

	t.Run("recurring dates create one class each", func(t *testing.T) {
		f := newFixture(t)
		first := f.clock.Now().Add(24 * time.Hour)
		ids, err := f.classes.CreateClass(ctx, commands.CreateClassInput{
			Title:           "Weekly HIIT",
			MaxCapacity:     10,
			ScheduledAt:     first,
			AdditionalDates: []time.Time{first.AddDate(0, 0, 7)},
		})
		require.NoError(t, err)
		require.Len(t, ids, 2)

		detail, err := f.catalog.GetDetail(ctx, ids[1])
		require.NoError(t, err)
		assert.True(t, first.AddDate(0, 0, 7).Equal(detail.Class.ScheduledAt))
		assert.Empty(t, detail.Participants)
	})
}

func TestOutbox(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	classID := f.createClass(t, 2, time.Hour)
	user := uuid.New()

	_, err := f.bookings.AttemptBook(ctx, user, classID)
	require.NoError(t, err)
	f.clock.Add(time.Minute)
	require.NoError(t, f.bookings.CancelBooking(ctx, user, classID))

	pending, err := f.events.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, booking.TransitionCreated.EventType(), pending[0].Type)
	assert.Equal(t, booking.TransitionCancelled.EventType(), pending[1].Type)

	require.NoError(t, f.events.MarkPublished(ctx, []uuid.UUID{pending[0].ID}, f.clock.Now()))

	pending, err = f.events.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, booking.TransitionCancelled.EventType(), pending[0].Type)
}

func TestFailedBookingLeavesNoEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	classID := f.createClass(t, 1, time.Hour)

	_, err := f.bookings.AttemptBook(ctx, uuid.New(), classID)
	require.NoError(t, err)
	_, err = f.bookings.AttemptBook(ctx, uuid.New(), classID)
	require.ErrorIs(t, err, booking.ErrClassFull)

	pending, err := f.events.Pending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestOpen(t *testing.T) {
	busyTimeout := func(t *testing.T, db *gorm.DB) int {
		t.Helper()
		var ms int
		require.NoError(t, db.Raw("PRAGMA busy_timeout").Scan(&ms).Error)
		return ms
	}

	t.Run("plain path", func(t *testing.T) {
		db, cleanup, err := sqlitestore.Open(filepath.Join(t.TempDir(), "plain.db"))
		require.NoError(t, err)
		t.Cleanup(cleanup)

		assert.Equal(t, 5000, busyTimeout(t, db))
	})

	t.Run("path that already carries a query string", func(t *testing.T) {
		db, cleanup, err := sqlitestore.Open(filepath.Join(t.TempDir(), "query.db") + "?_pragma=foreign_keys(1)")
		require.NoError(t, err)
		t.Cleanup(cleanup)

		assert.Equal(t, 5000, busyTimeout(t, db))
		var fk int
		require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
		assert.Equal(t, 1, fk)
	})

	t.Run("empty path", func(t *testing.T) {
		_, _, err := sqlitestore.Open("")

		require.Error(t, err)
		stack := strings.Join(errs.ExtractStackLines(err, 0), "\n")
		assert.Contains(t, stack, "sqlitestore.Open")
	})
}
