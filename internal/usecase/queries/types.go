package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ClassView struct {
	ID              uuid.UUID
	Title           string
	Description     *string
	Instructor      *string
	MaxCapacity     int
	ScheduledAt     time.Time
	DurationMinutes int
	CreatedBy       *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
	BookedCount     int
}

// AvailableSpots never goes below zero, even after capacity was lowered.
func (v *ClassView) AvailableSpots() int {
	if spots := v.MaxCapacity - v.BookedCount; spots > 0 {
		return spots
	}
	return 0
}

type BookingView struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ClassID         uuid.UUID
	Status          string
	BookedAt        time.Time
	UpdatedAt       *time.Time
	ClassTitle      string
	ClassInstructor *string
	ScheduledAt     time.Time
	DurationMinutes int
}

type ParticipantView struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	BookedAt  time.Time
}

type ClassDetail struct {
	Class        *ClassView
	Participants []*ParticipantView
}
