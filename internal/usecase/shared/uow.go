package shared

import (
	"context"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/domain/class"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one open transaction. Repositories must
// not be retained after fn returns.
type Tx interface {
	Classes() ClassRepository
	Bookings() BookingRepository
	Events() EventRepository
}

type ClassRepository interface {
	// LockByID fetches the class and holds its row lock until the transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*class.Class, error)
	Insert(ctx context.Context, c *class.Class) error
	Update(ctx context.Context, c *class.Class) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookingRepository interface {
	FindByUserAndClass(ctx context.Context, userID, classID uuid.UUID) (*booking.Booking, error)
	LockByUserAndClass(ctx context.Context, userID, classID uuid.UUID) (*booking.Booking, error)
	CountConfirmed(ctx context.Context, classID uuid.UUID) (int, error)
	Insert(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
}

type EventRepository interface {
	Append(ctx context.Context, b *booking.Booking, transition booking.Transition, occurredAt time.Time) error
}
