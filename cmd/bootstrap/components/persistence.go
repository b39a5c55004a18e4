package components

import (
	"context"
	"fmt"

	"class-booking/internal/infra/db"
	"class-booking/internal/infra/outbox"
	"class-booking/internal/infra/readstore"
	"class-booking/internal/infra/repository"
	"class-booking/internal/infra/sqlitestore"
	"class-booking/internal/infra/uow"
	"class-booking/internal/pkg/config"
	"class-booking/internal/usecase/queries"
	"class-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewRetryPolicy,
		NewStore,
	),
)

// Store is the set of ports a storage backend must provide.
type Store struct {
	fx.Out

	UnitOfWork shared.UnitOfWork
	Reads      queries.ReadUnitOfWork
	Classes    queries.ClassReadStore
	Bookings   queries.BookingReadStore
	Events     outbox.Store
}

func NewRetryPolicy(cfg config.Config) shared.RetryPolicy {
	return shared.RetryPolicy{
		MaxRetries: cfg.Booking.MaxRetries,
		Base:       cfg.Booking.RetryBase,
	}
}

func NewStore(lc fx.Lifecycle, cfg config.Config, retry shared.RetryPolicy) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		return newPostgresStore(lc, cfg, retry)
	case config.StoreDriverSQLite:
		return newSQLiteStore(lc, cfg, retry)
	default:
		return Store{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

func newPostgresStore(lc fx.Lifecycle, cfg config.Config, retry shared.RetryPolicy) (Store, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return Store{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	work := uow.NewPostgresUoW(pool, retry, cfg.Booking.LockTimeout)
	return Store{
		UnitOfWork: work,
		Reads:      work,
		Classes:    readstore.NewClassReadStore(pool),
		Bookings:   readstore.NewBookingReadStore(pool),
		Events:     repository.NewEventRepository(pool),
	}, nil
}

func newSQLiteStore(lc fx.Lifecycle, cfg config.Config, retry shared.RetryPolicy) (Store, error) {
	gdb, cleanup, err := sqlitestore.Open(cfg.Store.SQLitePath)
	if err != nil {
		return Store{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	work := sqlitestore.NewUoW(gdb, retry)
	return Store{
		UnitOfWork: work,
		Reads:      work,
		Classes:    sqlitestore.NewClassReadStore(gdb),
		Bookings:   sqlitestore.NewBookingReadStore(gdb),
		Events:     sqlitestore.NewEventRepository(gdb),
	}, nil
}
