package queries

import "context"

// ReadUnitOfWork runs several reads against one snapshot.
type ReadUnitOfWork interface {
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx ReadTx) error) error
}

// ReadTx exposes read stores bound to one read-only transaction. They must not
// be retained after fn returns.
type ReadTx interface {
	Classes() ClassReadStore
	Bookings() BookingReadStore
}
