package request

import (
	"strings"
	"time"

	"class-booking/internal/pkg/ptr"
	"class-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateClassRequest struct {
	Title           string      `json:"title" binding:"required,max=255"`
	Description     *string     `json:"description,omitempty"`
	Instructor      *string     `json:"instructor,omitempty" binding:"omitempty,max=255"`
	MaxCapacity     int         `json:"maxCapacity" binding:"required,min=1"`
	ScheduledAt     time.Time   `json:"scheduledAt" binding:"required"`
	DurationMinutes *int        `json:"durationMinutes,omitempty" binding:"omitempty,min=15"`
	AdditionalDates []time.Time `json:"additionalDates,omitempty" binding:"omitempty,max=52"`
}

func (r CreateClassRequest) ToInput(createdBy uuid.UUID) commands.CreateClassInput {
	in := commands.CreateClassInput{
		Title:           strings.TrimSpace(r.Title),
		Description:     trimmed(r.Description),
		Instructor:      trimmed(r.Instructor),
		MaxCapacity:     r.MaxCapacity,
		ScheduledAt:     r.ScheduledAt,
		AdditionalDates: r.AdditionalDates,
		CreatedBy:       &createdBy,
	}
	if r.DurationMinutes != nil {
		in.DurationMinutes = *r.DurationMinutes
	}
	return in
}

// UpdateClassRequest is a partial update; absent fields stay unchanged.
type UpdateClassRequest struct {
	Title           *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Description     *string    `json:"description,omitempty"`
	Instructor      *string    `json:"instructor,omitempty" binding:"omitempty,max=255"`
	MaxCapacity     *int       `json:"maxCapacity,omitempty" binding:"omitempty,min=1"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty" binding:"omitempty,min=15"`
}

func (r UpdateClassRequest) ToInput() commands.UpdateClassInput {
	return commands.UpdateClassInput{
		Title:           r.Title,
		Description:     trimmed(r.Description),
		Instructor:      trimmed(r.Instructor),
		MaxCapacity:     r.MaxCapacity,
		ScheduledAt:     r.ScheduledAt,
		DurationMinutes: r.DurationMinutes,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return ptr.To(strings.TrimSpace(*s))
}
