//go:build unit || e2e

package builder

import (
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/pkg/ptr"
	"class-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	ClassID  uuid.UUID
	Status   booking.Status
	BookedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		ClassID:  uuid.New(),
		Status:   booking.StatusConfirmed,
		BookedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(b.ID, b.UserID, b.ClassID, b.Status, b.BookedAt, nil)
}

func (b *BookingBuilder) BuildView(c *ClassBuilder) *queries.BookingView {
	return &queries.BookingView{
		ID:              b.ID,
		UserID:          b.UserID,
		ClassID:         c.ID,
		Status:          string(b.Status),
		BookedAt:        b.BookedAt,
		ClassTitle:      c.Title,
		ClassInstructor: ptr.NilIfZero(c.Instructor),
		ScheduledAt:     c.ScheduledAt,
		DurationMinutes: c.DurationMinutes,
	}
}

func (b *BookingBuilder) BuildParticipant() *queries.ParticipantView {
	return &queries.ParticipantView{BookingID: b.ID, UserID: b.UserID, BookedAt: b.BookedAt}
}
