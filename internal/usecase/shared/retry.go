package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"class-booking/internal/pkg/errs"
)

var (
	ErrTransactionBegin   = errs.New("failed to begin transaction")
	ErrTransactionCommit  = errs.New("failed to commit transaction")
	ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// RetryPolicy re-runs a whole transaction attempt on transient failures with
// exponential backoff and jitter.
type RetryPolicy struct {
	MaxRetries int
	Base       time.Duration
	// Retryable decides whether an attempt error is transient.
	Retryable func(error) bool
}

// Run calls attempt until it succeeds, returns a non-retryable error, or the
// retry budget is spent. Exhaustion is marked with ErrMaxRetriesExceeded.
func (p RetryPolicy) Run(ctx context.Context, attempt func(attempt int) error) error {
	for i := 0; ; i++ {
		err := attempt(i)
		if err == nil {
			return nil
		}

		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}

		if i >= p.MaxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", i+1,
				"error", err.Error())
			return errs.Mark(err, ErrMaxRetriesExceeded)
		}

		waitTime := p.Backoff(i)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", i+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (p RetryPolicy) Backoff(attempt int) time.Duration {
	waitTime := time.Duration(1<<attempt) * p.Base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to a non-negative value
	return int64(uval) % n
}
