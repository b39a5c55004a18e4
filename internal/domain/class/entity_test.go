//go:build unit

package class_test

import (
	"strings"
	"testing"
	"time"

	"class-booking/internal/domain/class"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func validDraft() class.Draft {
	return class.Draft{
		Title:       "  Morning Yoga  ",
		Capacity:    12,
		ScheduledAt: now.Add(48 * time.Hour),
	}
}

func TestNewClass(t *testing.T) {
	t.Run("defaults and normalisation", func(t *testing.T) {
		c, err := class.NewClass(validDraft(), now)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, c.ID())
		assert.Equal(t, "Morning Yoga", c.Title())
		assert.Equal(t, class.DefaultDurationMinutes, c.DurationMinutes())
		assert.Equal(t, now, c.CreatedAt())
		assert.Equal(t, now, c.UpdatedAt())
	})

	cases := []struct {
		name   string
		mutate func(*class.Draft)
		errIs  error
	}{
		{name: "blank title", mutate: func(d *class.Draft) { d.Title = "   " }, errIs: class.ErrEmptyTitle},
		{name: "title too long", mutate: func(d *class.Draft) { d.Title = strings.Repeat("a", class.MaxTitleLength+1) }, errIs: class.ErrTitleTooLong},
		{name: "zero capacity", mutate: func(d *class.Draft) { d.Capacity = 0 }, errIs: class.ErrInvalidCapacity},
		{name: "capacity of one", mutate: func(d *class.Draft) { d.Capacity = 1 }},
		{name: "duration below minimum", mutate: func(d *class.Draft) { d.DurationMinutes = 14 }, errIs: class.ErrInvalidDuration},
		{name: "minimum duration", mutate: func(d *class.Draft) { d.DurationMinutes = class.MinDurationMinutes }},
		{name: "missing schedule", mutate: func(d *class.Draft) { d.ScheduledAt = time.Time{} }, errIs: class.ErrMissingScheduledAt},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)

			_, err := class.NewClass(d, now)

			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewOccurrences(t *testing.T) {
	t.Run("one class per date", func(t *testing.T) {
		d := validDraft()
		extra := []time.Time{d.ScheduledAt.Add(7 * 24 * time.Hour), d.ScheduledAt.Add(14 * 24 * time.Hour)}

		classes, err := class.NewOccurrences(d, extra, now)

		require.NoError(t, err)
		require.Len(t, classes, 3)
		assert.Equal(t, d.ScheduledAt, classes[0].ScheduledAt())
		assert.Equal(t, extra[0], classes[1].ScheduledAt())
		assert.Equal(t, extra[1], classes[2].ScheduledAt())
		assert.NotEqual(t, classes[0].ID(), classes[1].ID())
	})

	t.Run("duplicate date is rejected", func(t *testing.T) {
		d := validDraft()
		_, err := class.NewOccurrences(d, []time.Time{d.ScheduledAt}, now)
		assert.ErrorIs(t, err, class.ErrDuplicateOccurrence)
	})
}

func TestApply(t *testing.T) {
	original, err := class.NewClass(validDraft(), now)
	require.NoError(t, err)

	t.Run("only provided fields change", func(t *testing.T) {
		capacity := 20
		later := now.Add(time.Hour)

		patched, err := original.Apply(class.Patch{Capacity: &capacity}, later)

		require.NoError(t, err)
		assert.Equal(t, 20, patched.Capacity())
		assert.Equal(t, original.Title(), patched.Title())
		assert.Equal(t, original.ScheduledAt(), patched.ScheduledAt())
		assert.Equal(t, later, patched.UpdatedAt())
		assert.Equal(t, 12, original.Capacity())
	})

	t.Run("invalid patch is rejected", func(t *testing.T) {
		capacity := 0
		_, err := original.Apply(class.Patch{Capacity: &capacity}, now)
		assert.ErrorIs(t, err, class.ErrInvalidCapacity)
	})
}
