//go:build unit

package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"class-booking/internal/handler/dto/response"
	"class-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromClassDetail(t *testing.T) {
	at := time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)
	instructor := "Sato"
	detail := &queries.ClassDetail{
		Class: &queries.ClassView{
			ID:              uuid.New(),
			Title:           "Yoga",
			Instructor:      &instructor,
			MaxCapacity:     3,
			ScheduledAt:     at,
			DurationMinutes: 60,
			CreatedAt:       at,
			UpdatedAt:       at,
			BookedCount:     1,
		},
		Participants: []*queries.ParticipantView{
			{BookingID: uuid.New(), UserID: uuid.New(), BookedAt: at},
		},
	}

	res := response.FromClassDetail(detail)
	require.NotNil(t, res)
	assert.Equal(t, detail.Class.ID, res.ID)
	assert.Equal(t, 3, res.MaxCapacity)
	assert.Equal(t, 2, res.AvailableSpots)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	for _, key := range []string{"maxCapacity", "scheduledAt", "durationMinutes", "bookedCount", "availableSpots", "participants"} {
		assert.Contains(t, body, key)
	}
	for _, key := range []string{"max_capacity", "scheduled_at", "booked_count", "MaxCapacity"} {
		assert.NotContains(t, body, key)
	}

	ps, ok := body["participants"].([]any)
	require.True(t, ok)
	require.Len(t, ps, 1)
	p := ps[0].(map[string]any)
	assert.Contains(t, p, "bookingId")
	assert.Contains(t, p, "userId")
	assert.NotContains(t, p, "booking_id")
}
