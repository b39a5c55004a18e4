package commands

import (
	"context"
	"log/slog"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/domain/class"
	"class-booking/internal/infra"
	"class-booking/internal/pkg/clock"
	"class-booking/internal/pkg/errs"
	"class-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateClassInput struct {
	Title           string
	Description     *string
	Instructor      *string
	MaxCapacity     int
	ScheduledAt     time.Time
	DurationMinutes int
	AdditionalDates []time.Time
	CreatedBy       *uuid.UUID
}

type UpdateClassInput struct {
	Title           *string
	Description     *string
	Instructor      *string
	MaxCapacity     *int
	ScheduledAt     *time.Time
	DurationMinutes *int
}

type ClassCommands interface {
	// CreateClass creates one class per date, all or nothing, and returns
	// their ids in date order.
	CreateClass(ctx context.Context, in CreateClassInput) ([]uuid.UUID, error)
	UpdateClass(ctx context.Context, classID uuid.UUID, in UpdateClassInput) error
	// DeleteClass removes the class only; its bookings stay behind.
	DeleteClass(ctx context.Context, classID uuid.UUID) error
}

type classCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewClassCommands(uow shared.UnitOfWork, clk clock.Clock) ClassCommands {
	return &classCommandsImpl{uow: uow, clock: clk}
}

func (uc *classCommandsImpl) CreateClass(ctx context.Context, in CreateClassInput) ([]uuid.UUID, error) {
	draft := class.Draft{
		Title:           in.Title,
		Description:     in.Description,
		Instructor:      in.Instructor,
		Capacity:        in.MaxCapacity,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		CreatedBy:       in.CreatedBy,
	}
	classes, err := class.NewOccurrences(draft, in.AdditionalDates, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, c := range classes {
			if err := tx.Classes().Insert(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateClassError(err)
	}

	ids := make([]uuid.UUID, len(classes))
	for i, c := range classes {
		ids[i] = c.ID()
	}
	slog.InfoContext(ctx, "classes created", "count", len(ids), "title", draft.Title)
	return ids, nil
}

// UpdateClass holds the class lock while checking a lowered capacity against
// the confirmed count, so it cannot interleave with AttemptBook.
func (uc *classCommandsImpl) UpdateClass(ctx context.Context, classID uuid.UUID, in UpdateClassInput) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Classes().LockByID(ctx, classID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return booking.ErrClassNotFound.WithCause(err)
			}
			return err
		}

		next, err := current.Apply(class.Patch{
			Title:           in.Title,
			Description:     in.Description,
			Instructor:      in.Instructor,
			Capacity:        in.MaxCapacity,
			ScheduledAt:     in.ScheduledAt,
			DurationMinutes: in.DurationMinutes,
		}, uc.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if next.Capacity() < current.Capacity() {
			confirmed, err := tx.Bookings().CountConfirmed(ctx, classID)
			if err != nil {
				return err
			}
			if next.Capacity() < confirmed {
				return booking.ErrCapacityBelowConfirmed
			}
		}

		return tx.Classes().Update(ctx, next)
	})
	if err != nil {
		return translateClassError(err)
	}
	return nil
}

func (uc *classCommandsImpl) DeleteClass(ctx context.Context, classID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Classes().Delete(ctx, classID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return booking.ErrClassNotFound.WithCause(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return translateClassError(err)
	}
	slog.InfoContext(ctx, "class deleted", "class_id", classID)
	return nil
}

func translateClassError(err error) error {
	if errs.Is(err, errs.ErrDomainValidation) {
		return err
	}
	if infra.IsKind(err, infra.KindValidation) {
		return errs.Mark(err, errs.ErrDomainValidation)
	}
	return translateTxError(err)
}
