package queries

import (
	"context"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/infra"
	"class-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type ClassQueries interface {
	ListUpcoming(ctx context.Context) ([]*ClassView, error)
	GetDetail(ctx context.Context, classID uuid.UUID) (*ClassDetail, error)
}

type ClassReadStore interface {
	FindUpcoming(ctx context.Context, after time.Time) ([]*ClassView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ClassView, error)
}

type classQueriesImpl struct {
	classes ClassReadStore
	reads   ReadUnitOfWork
	clock   clock.Clock
}

func NewClassQueries(classes ClassReadStore, reads ReadUnitOfWork, clk clock.Clock) ClassQueries {
	return &classQueriesImpl{classes: classes, reads: reads, clock: clk}
}

func (q *classQueriesImpl) ListUpcoming(ctx context.Context) ([]*ClassView, error) {
	views, err := q.classes.FindUpcoming(ctx, q.clock.Now())
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*ClassView{}
	}
	return views, nil
}

// GetDetail reads the class and its participants in one snapshot so the
// booked count matches the participant list.
func (q *classQueriesImpl) GetDetail(ctx context.Context, classID uuid.UUID) (*ClassDetail, error) {
	var detail *ClassDetail
	err := q.reads.WithinReadOnly(ctx, func(ctx context.Context, tx ReadTx) error {
		view, err := tx.Classes().FindByID(ctx, classID)
		if err != nil {
			return err
		}
		participants, err := tx.Bookings().FindConfirmedParticipants(ctx, classID)
		if err != nil {
			return err
		}
		if participants == nil {
			participants = []*ParticipantView{}
		}
		detail = &ClassDetail{Class: view, Participants: participants}
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrClassNotFound.WithCause(err)
		}
		return nil, err
	}
	return detail, nil
}
