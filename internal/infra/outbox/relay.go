// Package outbox relays booking events recorded in the same transaction as
// the booking change. Delivery is at least once: an event is marked published
// only after the publisher accepted it.
package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"class-booking/internal/infra/record"
	"class-booking/internal/pkg/clock"
	"class-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type Store interface {
	Pending(ctx context.Context, limit int) ([]record.Event, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, events []record.Event) error
	Close() error
}

type Relay struct {
	store     Store
	publisher Publisher
	clock     clock.Clock
	interval  time.Duration
	batchSize int

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewRelay(store Store, publisher Publisher, clk clock.Clock, interval time.Duration, batchSize int) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		clock:     clk,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Flush publishes pending events until the backlog is empty and returns how
// many were published.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	total := 0
	for {
		events, err := r.store.Pending(ctx, r.batchSize)
		if err != nil {
			return total, errs.Wrap(err, "failed to load pending events")
		}
		if len(events) == 0 {
			return total, nil
		}

		if err := r.publisher.Publish(ctx, events); err != nil {
			return total, errs.Wrap(err, "failed to publish booking events")
		}

		ids := make([]uuid.UUID, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}
		if err := r.store.MarkPublished(ctx, ids, r.clock.Now()); err != nil {
			return total, errs.Wrap(err, "failed to mark events published")
		}
		total += len(events)

		if len(events) < r.batchSize {
			return total, nil
		}
	}
}

// Start runs Flush every interval until Stop.
func (r *Relay) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := r.Flush(ctx)
				if err != nil && ctx.Err() == nil {
					slog.Warn("outbox relay flush failed", "error", err.Error(), "published", n)
					continue
				}
				if n > 0 {
					slog.Debug("outbox relay published events", "count", n)
				}
			}
		}
	}()
}

func (r *Relay) Stop(ctx context.Context) error {
	var err error
	r.once.Do(func() {
		if r.cancel != nil {
			r.cancel()
			select {
			case <-r.done:
			case <-ctx.Done():
				err = ctx.Err()
			}
		}
		if cerr := r.publisher.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}
