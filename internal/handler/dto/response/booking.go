package response

import (
	"time"

	"class-booking/internal/usecase/commands"
	"class-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingOutcomeResponse struct {
	BookingID   uuid.UUID `json:"bookingId"`
	ClassID     uuid.UUID `json:"classId"`
	UserID      uuid.UUID `json:"userId"`
	BookedAt    time.Time `json:"bookedAt"`
	Reactivated bool      `json:"reactivated"`
}

type BookedClassResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Instructor      *string   `json:"instructor,omitempty"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

type BookingResponse struct {
	BookingID uuid.UUID           `json:"bookingId"`
	Status    string              `json:"status"`
	BookedAt  time.Time           `json:"bookedAt"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`
	Class     BookedClassResponse `json:"class"`
}

type ConfirmedCountResponse struct {
	ClassID uuid.UUID `json:"classId"`
	Count   int       `json:"count"`
}

func FromBookingOutcome(o *commands.BookingOutcome) *BookingOutcomeResponse {
	return &BookingOutcomeResponse{
		BookingID:   o.BookingID,
		ClassID:     o.ClassID,
		UserID:      o.UserID,
		BookedAt:    o.BookedAt,
		Reactivated: o.Reactivated,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = &BookingResponse{
			BookingID: v.ID,
			Status:    v.Status,
			BookedAt:  v.BookedAt,
			UpdatedAt: v.UpdatedAt,
			Class: BookedClassResponse{
				ID:              v.ClassID,
				Title:           v.ClassTitle,
				Instructor:      v.ClassInstructor,
				ScheduledAt:     v.ScheduledAt,
				DurationMinutes: v.DurationMinutes,
			},
		}
	}
	return res
}
