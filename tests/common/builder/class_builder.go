//go:build unit || e2e

package builder

import (
	"time"

	"class-booking/internal/domain/class"
	reqdto "class-booking/internal/handler/dto/request"
	"class-booking/internal/pkg/ptr"
	"class-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ClassBuilder struct {
	ID              uuid.UUID
	Title           string
	Instructor      string
	Capacity        int
	ScheduledAt     time.Time
	DurationMinutes int
	BookedCount     int
	CreatedAt       time.Time
}

func NewClassBuilder() *ClassBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &ClassBuilder{
		ID:              uuid.New(),
		Title:           "Morning Yoga",
		Instructor:      "Aiko",
		Capacity:        10,
		ScheduledAt:     now.Add(48 * time.Hour),
		DurationMinutes: class.DefaultDurationMinutes,
		CreatedAt:       now,
	}
}

func (b *ClassBuilder) With(mutate func(*ClassBuilder)) *ClassBuilder {
	mutate(b)
	return b
}

func (b *ClassBuilder) BuildDomain() *class.Class {
	return class.ReconstructClass(b.ID, b.Title, nil, ptr.NilIfZero(b.Instructor), b.Capacity, b.ScheduledAt,
		b.DurationMinutes, nil, b.CreatedAt, b.CreatedAt)
}

func (b *ClassBuilder) BuildView() *queries.ClassView {
	return &queries.ClassView{
		ID:              b.ID,
		Title:           b.Title,
		Instructor:      ptr.NilIfZero(b.Instructor),
		MaxCapacity:     b.Capacity,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: b.DurationMinutes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
		BookedCount:     b.BookedCount,
	}
}

func (b *ClassBuilder) BuildCreateRequestDTO() reqdto.CreateClassRequest {
	return reqdto.CreateClassRequest{
		Title:           b.Title,
		Instructor:      ptr.NilIfZero(b.Instructor),
		MaxCapacity:     b.Capacity,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: ptr.To(b.DurationMinutes),
	}
}
