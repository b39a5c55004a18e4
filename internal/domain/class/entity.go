package class

import (
	"errors"
	"strings"
	"time"

	"class-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("class title cannot be empty")
	ErrTitleTooLong        = errors.New("class title is too long (max 255 characters)")
	ErrInvalidCapacity     = errors.New("class capacity must be at least 1")
	ErrInvalidDuration     = errors.New("class duration must be at least 15 minutes")
	ErrMissingScheduledAt  = errors.New("class scheduled time is required")
	ErrDuplicateOccurrence = errors.New("additional dates must differ from the scheduled time")
)

const (
	MaxTitleLength         = 255
	MinDurationMinutes     = 15
	DefaultDurationMinutes = 60
)

type Class struct {
	id              uuid.UUID
	title           string
	description     *string
	instructor      *string
	capacity        int
	scheduledAt     time.Time
	durationMinutes int
	createdBy       *uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

// Draft carries the caller-supplied attributes of a class before validation.
type Draft struct {
	Title           string
	Description     *string
	Instructor      *string
	Capacity        int
	ScheduledAt     time.Time
	DurationMinutes int
	CreatedBy       *uuid.UUID
}

func NewClass(d Draft, now time.Time) (*Class, error) {
	if d.DurationMinutes == 0 {
		d.DurationMinutes = DefaultDurationMinutes
	}
	c := &Class{
		id:              uuid.New(),
		title:           strings.TrimSpace(d.Title),
		description:     d.Description,
		instructor:      d.Instructor,
		capacity:        d.Capacity,
		scheduledAt:     d.ScheduledAt,
		durationMinutes: d.DurationMinutes,
		createdBy:       d.CreatedBy,
		createdAt:       now,
		updatedAt:       now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewOccurrences expands a draft into one class per date: the draft's own
// ScheduledAt first, then every additional date in order.
func NewOccurrences(d Draft, additional []time.Time, now time.Time) ([]*Class, error) {
	classes := make([]*Class, 0, len(additional)+1)
	seen := make(map[time.Time]struct{}, len(additional)+1)

	for _, at := range append([]time.Time{d.ScheduledAt}, additional...) {
		key := at.UTC()
		if _, dup := seen[key]; dup {
			return nil, ErrDuplicateOccurrence
		}
		seen[key] = struct{}{}

		occurrence := d
		occurrence.ScheduledAt = at
		c, err := NewClass(occurrence, now)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

func ReconstructClass(
	id uuid.UUID,
	title string,
	description, instructor *string,
	capacity int,
	scheduledAt time.Time,
	durationMinutes int,
	createdBy *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Class {
	return &Class{
		id:              id,
		title:           title,
		description:     description,
		instructor:      instructor,
		capacity:        capacity,
		scheduledAt:     scheduledAt,
		durationMinutes: durationMinutes,
		createdBy:       createdBy,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Patch holds the fields of a partial update; nil means unchanged.
type Patch struct {
	Title           *string
	Description     *string
	Instructor      *string
	Capacity        *int
	ScheduledAt     *time.Time
	DurationMinutes *int
}

// Apply returns the patched class without mutating the receiver.
func (c *Class) Apply(p Patch, now time.Time) (*Class, error) {
	next := *c
	next.title = strings.TrimSpace(patch.Coalesce(p.Title, c.title))
	next.capacity = patch.Coalesce(p.Capacity, c.capacity)
	next.scheduledAt = patch.Coalesce(p.ScheduledAt, c.scheduledAt)
	next.durationMinutes = patch.Coalesce(p.DurationMinutes, c.durationMinutes)
	if p.Description != nil {
		next.description = p.Description
	}
	if p.Instructor != nil {
		next.instructor = p.Instructor
	}
	next.updatedAt = now

	if err := next.validate(); err != nil {
		return nil, err
	}
	return &next, nil
}

func (c *Class) validate() error {
	if c.title == "" {
		return ErrEmptyTitle
	}
	if len(c.title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if c.capacity < 1 {
		return ErrInvalidCapacity
	}
	if c.durationMinutes < MinDurationMinutes {
		return ErrInvalidDuration
	}
	if c.scheduledAt.IsZero() {
		return ErrMissingScheduledAt
	}
	return nil
}

func (c *Class) ID() uuid.UUID          { return c.id }
func (c *Class) Title() string          { return c.title }
func (c *Class) Description() *string   { return c.description }
func (c *Class) Instructor() *string    { return c.instructor }
func (c *Class) Capacity() int          { return c.capacity }
func (c *Class) ScheduledAt() time.Time { return c.scheduledAt }
func (c *Class) DurationMinutes() int   { return c.durationMinutes }
func (c *Class) CreatedBy() *uuid.UUID  { return c.createdBy }
func (c *Class) CreatedAt() time.Time   { return c.createdAt }
func (c *Class) UpdatedAt() time.Time   { return c.updatedAt }
