//go:build unit

package outbox

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"class-booking/internal/infra/record"
	"class-booking/internal/pkg/clock"
	"class-booking/internal/pkg/config"
	"class-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu        sync.Mutex
	events    []record.Event
	published map[uuid.UUID]time.Time
}

func newMemStore(n int) *memStore {
	s := &memStore{published: map[uuid.UUID]time.Time{}}
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.events = append(s.events, record.Event{
			ID:         uuid.New(),
			Type:       "booking.confirmed",
			ClassID:    uuid.New(),
			Payload:    []byte(`{}`),
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	return s
}

func (s *memStore) Pending(_ context.Context, limit int) ([]record.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []record.Event
	for _, e := range s.events {
		if _, done := s.published[e.ID]; !done && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.published[id] = at
	}
	return nil
}

type fakePublisher struct {
	mu      sync.Mutex
	batches [][]record.Event
	failOn  int
	closed  bool
}

func (p *fakePublisher) Publish(_ context.Context, events []record.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failOn > 0 && len(p.batches)+1 == p.failOn {
		p.failOn = 0
		return errors.New("broker unavailable")
	}
	p.batches = append(p.batches, events)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func TestRelayFlush(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("drains the backlog in batches", func(t *testing.T) {
		store := newMemStore(5)
		pub := &fakePublisher{}
		relay := NewRelay(store, pub, clock.NewMockClock(now), time.Second, 2)

		n, err := relay.Flush(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 5, n)
		require.Len(t, pub.batches, 3)
		assert.Len(t, pub.batches[2], 1)
		assert.Len(t, store.published, 5)
		for _, at := range store.published {
			assert.Equal(t, now, at)
		}
	})

	t.Run("publish failure leaves events pending", func(t *testing.T) {
		store := newMemStore(3)
		pub := &fakePublisher{failOn: 1}
		relay := NewRelay(store, pub, clock.NewMockClock(now), time.Second, 10)

		n, err := relay.Flush(context.Background())
		require.Error(t, err)
		assert.Zero(t, n)
		assert.Empty(t, store.published)

		n, err = relay.Flush(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("empty backlog publishes nothing", func(t *testing.T) {
		pub := &fakePublisher{}
		relay := NewRelay(newMemStore(0), pub, clock.NewMockClock(now), time.Second, 10)

		n, err := relay.Flush(context.Background())

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, pub.batches)
	})
}

func TestRelayStartStop(t *testing.T) {
	store := newMemStore(2)
	pub := &fakePublisher{}
	relay := NewRelay(store, pub, clock.NewRealClock(), 10*time.Millisecond, 10)

	relay.Start()
	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.published) == 2
	}, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, relay.Stop(ctx))
	assert.True(t, pub.closed)
}

func TestToMessagesKeyByClass(t *testing.T) {
	events := newMemStore(2).events

	msgs := toMessages(events)

	require.Len(t, msgs, 2)
	for i, m := range msgs {
		assert.Equal(t, events[i].ClassID.String(), string(m.Key))
		assert.Equal(t, "booking.confirmed", string(m.Headers[0].Value))
	}
}

func TestNewKafkaPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.KafkaConfig
		wantErr string
	}{
		{name: "no brokers", cfg: config.KafkaConfig{Topic: "events"}, wantErr: "at least one kafka broker is required"},
		{name: "no topic", cfg: config.KafkaConfig{Brokers: []string{"localhost:9092"}}, wantErr: "kafka topic cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKafkaPublisher(tt.cfg)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			stack := strings.Join(errs.ExtractStackLines(err, 0), "\n")
			assert.Contains(t, stack, "NewKafkaPublisher", "config errors carry a stack trace")
		})
	}

	t.Run("valid config", func(t *testing.T) {
		p, err := NewKafkaPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "events"})

		require.NoError(t, err)
		assert.NoError(t, p.Close())
	})
}
