// Package record holds the fixed-shape rows both stores persist. Every write
// validates its record before touching the database.
package record

import (
	"encoding/json"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/domain/class"
	"class-booking/internal/pkg/validate"

	"github.com/google/uuid"
)

type Class struct {
	ID              uuid.UUID  `validate:"required"`
	Title           string     `validate:"required,max=255"`
	Description     *string    `validate:"omitempty"`
	Instructor      *string    `validate:"omitempty,max=255"`
	Capacity        int        `validate:"gte=1"`
	ScheduledAt     time.Time  `validate:"required"`
	DurationMinutes int        `validate:"gte=15"`
	CreatedBy       *uuid.UUID `validate:"omitempty"`
	CreatedAt       time.Time  `validate:"required"`
	UpdatedAt       time.Time  `validate:"required"`
}

type Booking struct {
	ID        uuid.UUID  `validate:"required"`
	UserID    uuid.UUID  `validate:"required"`
	ClassID   uuid.UUID  `validate:"required"`
	Status    string     `validate:"booking_status"`
	BookedAt  time.Time  `validate:"required"`
	UpdatedAt *time.Time `validate:"omitempty"`
}

type Event struct {
	ID         uuid.UUID       `validate:"required"`
	Type       string          `validate:"event_type"`
	BookingID  uuid.UUID       `validate:"required"`
	UserID     uuid.UUID       `validate:"required"`
	ClassID    uuid.UUID       `validate:"required"`
	Payload    json.RawMessage `validate:"required"`
	OccurredAt time.Time       `validate:"required"`
}

// EventPayload is the JSON body stored with every booking event.
type EventPayload struct {
	BookingID  uuid.UUID `json:"bookingId"`
	UserID     uuid.UUID `json:"userId"`
	ClassID    uuid.UUID `json:"classId"`
	Status     string    `json:"status"`
	BookedAt   time.Time `json:"bookedAt"`
	OccurredAt time.Time `json:"occurredAt"`
}

func FromClass(c *class.Class) (Class, error) {
	r := Class{
		ID:              c.ID(),
		Title:           c.Title(),
		Description:     c.Description(),
		Instructor:      c.Instructor(),
		Capacity:        c.Capacity(),
		ScheduledAt:     c.ScheduledAt(),
		DurationMinutes: c.DurationMinutes(),
		CreatedBy:       c.CreatedBy(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
	return r, validate.Struct(r)
}

func (r Class) ToDomain() *class.Class {
	return class.ReconstructClass(
		r.ID, r.Title, r.Description, r.Instructor,
		r.Capacity, r.ScheduledAt, r.DurationMinutes,
		r.CreatedBy, r.CreatedAt, r.UpdatedAt,
	)
}

func FromBooking(b *booking.Booking) (Booking, error) {
	r := Booking{
		ID:        b.ID(),
		UserID:    b.UserID(),
		ClassID:   b.ClassID(),
		Status:    b.Status().String(),
		BookedAt:  b.BookedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
	return r, validate.Struct(r)
}

func (r Booking) ToDomain() *booking.Booking {
	return booking.ReconstructBooking(r.ID, r.UserID, r.ClassID, booking.Status(r.Status), r.BookedAt, r.UpdatedAt)
}

// NewEvent builds the outbox row for a transition of b.
func NewEvent(b *booking.Booking, transition booking.Transition, occurredAt time.Time) (Event, error) {
	payload, err := json.Marshal(EventPayload{
		BookingID:  b.ID(),
		UserID:     b.UserID(),
		ClassID:    b.ClassID(),
		Status:     b.Status().String(),
		BookedAt:   b.BookedAt(),
		OccurredAt: occurredAt,
	})
	if err != nil {
		return Event{}, err
	}
	e := Event{
		ID:         uuid.New(),
		Type:       transition.EventType(),
		BookingID:  b.ID(),
		UserID:     b.UserID(),
		ClassID:    b.ClassID(),
		Payload:    payload,
		OccurredAt: occurredAt,
	}
	return e, validate.Struct(e)
}
