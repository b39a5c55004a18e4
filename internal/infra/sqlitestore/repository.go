package sqlitestore

import (
	"context"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/domain/class"
	"class-booking/internal/infra"
	"class-booking/internal/infra/record"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Row locking is implicit: the single connection holds the database for the
// lifetime of the surrounding transaction.

type ClassRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) LockByID(ctx context.Context, id uuid.UUID) (*class.Class, error) {
	var m classModel
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&m).Error; err != nil {
		return nil, wrapErr("failed to lock class", err)
	}
	rec, err := m.toRecord()
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt class row", err)
	}
	return rec.ToDomain(), nil
}

func (r *ClassRepository) Insert(ctx context.Context, c *class.Class) error {
	rec, err := record.FromClass(c)
	if err != nil {
		return infra.WrapRepoErr("invalid class record", err, infra.KindValidation)
	}
	m := classModelFromRecord(rec)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapErr("failed to insert class", err)
	}
	return nil
}

func (r *ClassRepository) Update(ctx context.Context, c *class.Class) error {
	rec, err := record.FromClass(c)
	if err != nil {
		return infra.WrapRepoErr("invalid class record", err, infra.KindValidation)
	}
	m := classModelFromRecord(rec)
	res := r.db.WithContext(ctx).Model(&classModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"title":            m.Title,
		"description":      m.Description,
		"instructor":       m.Instructor,
		"max_capacity":     m.MaxCapacity,
		"scheduled_at":     m.ScheduledAt,
		"duration_minutes": m.DurationMinutes,
		"updated_at":       m.UpdatedAt,
	})
	if res.Error != nil {
		return wrapErr("failed to update class", res.Error)
	}
	if res.RowsAffected == 0 {
		return infra.WrapRepoErr("class not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&classModel{})
	if res.Error != nil {
		return wrapErr("failed to delete class", res.Error)
	}
	if res.RowsAffected == 0 {
		return infra.WrapRepoErr("class not found", nil, infra.KindNotFound)
	}
	return nil
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) FindByUserAndClass(ctx context.Context, userID, classID uuid.UUID) (*booking.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND class_id = ?", userID.String(), classID.String()).
		Take(&m).Error
	if err != nil {
		return nil, wrapErr("failed to find booking", err)
	}
	rec, err := m.toRecord()
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row", err)
	}
	return rec.ToDomain(), nil
}

func (r *BookingRepository) LockByUserAndClass(ctx context.Context, userID, classID uuid.UUID) (*booking.Booking, error) {
	return r.FindByUserAndClass(ctx, userID, classID)
}

func (r *BookingRepository) CountConfirmed(ctx context.Context, classID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("class_id = ? AND status = ?", classID.String(), booking.StatusConfirmed.String()).
		Count(&count).Error
	if err != nil {
		return 0, wrapErr("failed to count confirmed bookings", err)
	}
	return int(count), nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	rec, err := record.FromBooking(b)
	if err != nil {
		return infra.WrapRepoErr("invalid booking record", err, infra.KindValidation)
	}
	m := bookingModelFromRecord(rec)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapErr("failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	rec, err := record.FromBooking(b)
	if err != nil {
		return infra.WrapRepoErr("invalid booking record", err, infra.KindValidation)
	}
	m := bookingModelFromRecord(rec)
	res := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"status":     m.Status,
		"booked_at":  m.BookedAt,
		"updated_at": m.UpdatedAt,
	})
	if res.Error != nil {
		return wrapErr("failed to update booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Append(ctx context.Context, b *booking.Booking, transition booking.Transition, occurredAt time.Time) error {
	rec, err := record.NewEvent(b, transition, occurredAt)
	if err != nil {
		return infra.WrapRepoErr("invalid booking event", err, infra.KindValidation)
	}
	m := eventModelFromRecord(rec)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapErr("failed to append booking event", err)
	}
	return nil
}

// Pending returns up to limit unpublished events, oldest first.
func (r *EventRepository) Pending(ctx context.Context, limit int) ([]record.Event, error) {
	var models []eventModel
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at ASC, id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, wrapErr("failed to query pending events", err)
	}

	events := make([]record.Event, 0, len(models))
	for _, m := range models {
		rec, err := m.toRecord()
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt booking event row", err)
		}
		events = append(events, rec)
	}
	return events, nil
}

func (r *EventRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	err := r.db.WithContext(ctx).Model(&eventModel{}).
		Where("id IN ? AND published_at IS NULL", keys).
		Update("published_at", utc(at)).Error
	if err != nil {
		return wrapErr("failed to mark events published", err)
	}
	return nil
}
