package queries

import (
	"context"

	"class-booking/internal/domain/booking"
	"class-booking/internal/infra"

	"github.com/google/uuid"
)

type BookingQueries interface {
	// GetConfirmedCount is a single-statement snapshot; it does not lock.
	// Bookings of a deleted class are not counted: the class is not found.
	GetConfirmedCount(ctx context.Context, classID uuid.UUID) (int, error)
	// ListForUser returns every booking of the user ordered by class start,
	// leaving out bookings whose class no longer exists.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	// ListConfirmedForClass returns confirmed participants ordered by booking time.
	ListConfirmedForClass(ctx context.Context, classID uuid.UUID) ([]*ParticipantView, error)
}

type BookingReadStore interface {
	// CountConfirmed fails with infra.KindNotFound when the class does not exist.
	CountConfirmed(ctx context.Context, classID uuid.UUID) (int, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	FindConfirmedParticipants(ctx context.Context, classID uuid.UUID) ([]*ParticipantView, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{readStore: readStore}
}

func (q *bookingQueriesImpl) GetConfirmedCount(ctx context.Context, classID uuid.UUID) (int, error) {
	count, err := q.readStore.CountConfirmed(ctx, classID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, booking.ErrClassNotFound.WithCause(err)
		}
		return 0, err
	}
	return count, nil
}

func (q *bookingQueriesImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error) {
	views, err := q.readStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*BookingView{}
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListConfirmedForClass(ctx context.Context, classID uuid.UUID) ([]*ParticipantView, error) {
	participants, err := q.readStore.FindConfirmedParticipants(ctx, classID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrClassNotFound.WithCause(err)
		}
		return nil, err
	}
	if participants == nil {
		participants = []*ParticipantView{}
	}
	return participants, nil
}
