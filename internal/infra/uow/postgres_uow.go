package uow

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"class-booking/internal/infra"
	"class-booking/internal/infra/db"
	"class-booking/internal/infra/readstore"
	"class-booking/internal/infra/repository"
	"class-booking/internal/pkg/errs"
	"class-booking/internal/usecase/queries"
	"class-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const setLockTimeout = `SELECT set_config('lock_timeout', $1, true)`

type PostgresUoW struct {
	pool        *pgxpool.Pool
	retry       shared.RetryPolicy
	lockTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, retry shared.RetryPolicy, lockTimeout time.Duration) *PostgresUoW {
	if retry.Retryable == nil {
		retry.Retryable = infra.IsRetryable
	}
	return &PostgresUoW{
		pool:        pool,
		retry:       retry,
		lockTimeout: lockTimeout,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; the
// capacity check is made safe by the class row lock, not the isolation level.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.Run(ctx, func(attempt int) error {
		return u.runOnce(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, attempt, func(ctx context.Context, tx pgx.Tx) error {
			return fn(ctx, &pgTx{dbtx: tx})
		})
	})
}

// Read-only transaction for consistent multi-statement snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx queries.ReadTx) error) error {
	options := pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead}
	return u.runOnce(ctx, options, 0, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &pgReadTx{dbtx: tx})
	})
}

// runOnce keeps begin, fn and commit/rollback in one call so retry loops do
// not accumulate deferred rollbacks.
func (u *PostgresUoW) runOnce(ctx context.Context, options pgx.TxOptions, attempt int, fn func(ctx context.Context, tx pgx.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, shared.ErrTransactionBegin)
	}

	err = u.applyLockTimeout(ctx, pgxTx)
	if err == nil {
		err = fn(ctx, pgxTx)
	}
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, shared.ErrTransactionCommit)
	}

	// Rollback on a fresh context so a cancelled request still releases its locks.
	rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if rollbackErr := pgxTx.Rollback(rbCtx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
		}
	}

	return err
}

func (u *PostgresUoW) applyLockTimeout(ctx context.Context, tx pgx.Tx) error {
	if u.lockTimeout <= 0 {
		return nil
	}
	ms := strconv.FormatInt(u.lockTimeout.Milliseconds(), 10) + "ms"
	if _, err := tx.Exec(ctx, setLockTimeout, ms); err != nil {
		return infra.WrapRepoErr("failed to set lock timeout", err)
	}
	return nil
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	classRepo   shared.ClassRepository
	bookingRepo shared.BookingRepository
	eventRepo   shared.EventRepository
}

func (t *pgTx) Classes() shared.ClassRepository {
	if t.classRepo == nil {
		t.classRepo = repository.NewClassRepository(t.dbtx)
	}
	return t.classRepo
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Events() shared.EventRepository {
	if t.eventRepo == nil {
		t.eventRepo = repository.NewEventRepository(t.dbtx)
	}
	return t.eventRepo
}

type pgReadTx struct {
	dbtx db.DBTX
}

func (t *pgReadTx) Classes() queries.ClassReadStore {
	return readstore.NewClassReadStore(t.dbtx)
}

func (t *pgReadTx) Bookings() queries.BookingReadStore {
	return readstore.NewBookingReadStore(t.dbtx)
}
