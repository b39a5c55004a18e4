package sqlitestore

import (
	"context"

	"class-booking/internal/infra"
	"class-booking/internal/usecase/queries"
	"class-booking/internal/usecase/shared"

	"gorm.io/gorm"
)

type UoW struct {
	db    *gorm.DB
	retry shared.RetryPolicy
}

func NewUoW(db *gorm.DB, retry shared.RetryPolicy) *UoW {
	if retry.Retryable == nil {
		retry.Retryable = infra.IsRetryable
	}
	return &UoW{db: db, retry: retry}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.Run(ctx, func(int) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(ctx, newTx(tx))
		})
	})
}

// WithinReadOnly needs no isolation options: the single connection already
// keeps writers out until the transaction ends.
func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx queries.ReadTx) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, readTx{db: tx})
	})
}

type sqliteTx struct {
	classes  *ClassRepository
	bookings *BookingRepository
	events   *EventRepository
}

func newTx(tx *gorm.DB) *sqliteTx {
	return &sqliteTx{
		classes:  NewClassRepository(tx),
		bookings: NewBookingRepository(tx),
		events:   NewEventRepository(tx),
	}
}

func (t *sqliteTx) Classes() shared.ClassRepository    { return t.classes }
func (t *sqliteTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *sqliteTx) Events() shared.EventRepository     { return t.events }

type readTx struct {
	db *gorm.DB
}

func (t readTx) Classes() queries.ClassReadStore    { return NewClassReadStore(t.db) }
func (t readTx) Bookings() queries.BookingReadStore { return NewBookingReadStore(t.db) }
