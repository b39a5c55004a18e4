package response

import (
	"time"

	"class-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ClassResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Instructor      *string    `json:"instructor,omitempty"`
	MaxCapacity     int        `json:"maxCapacity"`
	ScheduledAt     time.Time  `json:"scheduledAt"`
	DurationMinutes int        `json:"durationMinutes"`
	CreatedBy       *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	BookedCount     int        `json:"bookedCount"`
	AvailableSpots  int        `json:"availableSpots"`
}

type ParticipantResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	UserID    uuid.UUID `json:"userId"`
	BookedAt  time.Time `json:"bookedAt"`
}

type ClassDetailResponse struct {
	ClassResponse
	Participants []*ParticipantResponse `json:"participants"`
}

type CreateClassesResponse struct {
	IDs   []uuid.UUID `json:"ids"`
	Count int         `json:"count"`
}

func FromClassView(v *queries.ClassView) *ClassResponse {
	res := &ClassResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil
	}
	res.AvailableSpots = v.AvailableSpots()
	return res
}

func FromClassViews(views []*queries.ClassView) []*ClassResponse {
	res := make([]*ClassResponse, len(views))
	for i, v := range views {
		res[i] = FromClassView(v)
	}
	return res
}

func FromParticipants(ps []*queries.ParticipantView) []*ParticipantResponse {
	res := make([]*ParticipantResponse, len(ps))
	for i, p := range ps {
		res[i] = &ParticipantResponse{BookingID: p.BookingID, UserID: p.UserID, BookedAt: p.BookedAt}
	}
	return res
}

func FromClassDetail(d *queries.ClassDetail) *ClassDetailResponse {
	return &ClassDetailResponse{
		ClassResponse: *FromClassView(d.Class),
		Participants:  FromParticipants(d.Participants),
	}
}
