package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the single record kept per (user, class) pair. It is created on
// the first successful booking and mutated in place afterwards.
type Booking struct {
	id        uuid.UUID
	userID    uuid.UUID
	classID   uuid.UUID
	status    Status
	bookedAt  time.Time
	updatedAt *time.Time
}

func ReconstructBooking(
	id, userID, classID uuid.UUID,
	status Status,
	bookedAt time.Time,
	updatedAt *time.Time,
) *Booking {
	return &Booking{
		id:        id,
		userID:    userID,
		classID:   classID,
		status:    status,
		bookedAt:  bookedAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) ClassID() uuid.UUID    { return b.classID }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) BookedAt() time.Time   { return b.bookedAt }
func (b *Booking) UpdatedAt() *time.Time { return b.updatedAt }
func (b *Booking) IsConfirmed() bool     { return b.status == StatusConfirmed }
