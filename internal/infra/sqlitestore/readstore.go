package sqlitestore

import (
	"context"
	"sort"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/infra"
	"class-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassReadStore struct {
	db *gorm.DB
}

func NewClassReadStore(db *gorm.DB) *ClassReadStore {
	return &ClassReadStore{db: db}
}

func (r *ClassReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClassView, error) {
	var views []*queries.ClassView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m classModel
		if err := tx.Where("id = ?", id.String()).Take(&m).Error; err != nil {
			return wrapErr("failed to find class by ID", err)
		}
		var err error
		views, err = withBookedCounts(tx, []classModel{m})
		return err
	})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (r *ClassReadStore) FindUpcoming(ctx context.Context, after time.Time) ([]*queries.ClassView, error) {
	var views []*queries.ClassView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var models []classModel
		err := tx.Where("scheduled_at > ?", utc(after)).
			Order("scheduled_at ASC, id ASC").
			Find(&models).Error
		if err != nil {
			return wrapErr("failed to list upcoming classes", err)
		}
		views, err = withBookedCounts(tx, models)
		return err
	})
	return views, err
}

type classCount struct {
	ClassID string
	Booked  int
}

func withBookedCounts(tx *gorm.DB, models []classModel) ([]*queries.ClassView, error) {
	if len(models) == 0 {
		return nil, nil
	}

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}

	var counts []classCount
	err := tx.Model(&bookingModel{}).
		Select("class_id, COUNT(*) AS booked").
		Where("class_id IN ? AND status = ?", ids, booking.StatusConfirmed.String()).
		Group("class_id").
		Scan(&counts).Error
	if err != nil {
		return nil, wrapErr("failed to count bookings per class", err)
	}
	booked := make(map[string]int, len(counts))
	for _, c := range counts {
		booked[c.ClassID] = c.Booked
	}

	views := make([]*queries.ClassView, 0, len(models))
	for _, m := range models {
		rec, err := m.toRecord()
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt class row", err)
		}
		views = append(views, &queries.ClassView{
			ID:              rec.ID,
			Title:           rec.Title,
			Description:     rec.Description,
			Instructor:      rec.Instructor,
			MaxCapacity:     rec.Capacity,
			ScheduledAt:     rec.ScheduledAt,
			DurationMinutes: rec.DurationMinutes,
			CreatedBy:       rec.CreatedBy,
			CreatedAt:       rec.CreatedAt,
			UpdatedAt:       rec.UpdatedAt,
			BookedCount:     booked[m.ID],
		})
	}
	return views, nil
}

type BookingReadStore struct {
	db *gorm.DB
}

func NewBookingReadStore(db *gorm.DB) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) CountConfirmed(ctx context.Context, classID uuid.UUID) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireClass(tx, classID); err != nil {
			return err
		}
		var err error
		count, err = NewBookingRepository(tx).CountConfirmed(ctx, classID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// requireClass hides bookings whose class was deleted behind KindNotFound.
func requireClass(tx *gorm.DB, classID uuid.UUID) error {
	var exists int64
	if err := tx.Model(&classModel{}).Where("id = ?", classID.String()).Count(&exists).Error; err != nil {
		return wrapErr("failed to check class", err)
	}
	if exists == 0 {
		return infra.WrapRepoErr("class not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	var result []*queries.BookingView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookings []bookingModel
		if err := tx.Where("user_id = ?", userID.String()).Find(&bookings).Error; err != nil {
			return wrapErr("failed to list bookings by user", err)
		}
		if len(bookings) == 0 {
			return nil
		}

		classIDs := make([]string, len(bookings))
		for i, b := range bookings {
			classIDs[i] = b.ClassID
		}
		var classes []classModel
		if err := tx.Where("id IN ?", classIDs).Find(&classes).Error; err != nil {
			return wrapErr("failed to load booked classes", err)
		}
		byID := make(map[string]classModel, len(classes))
		for _, c := range classes {
			byID[c.ID] = c
		}

		for _, b := range bookings {
			c, ok := byID[b.ClassID]
			if !ok {
				// class deleted; the booking is orphaned
				continue
			}
			rec, err := b.toRecord()
			if err != nil {
				return infra.WrapRepoErr("corrupt booking row", err)
			}
			result = append(result, &queries.BookingView{
				ID:              rec.ID,
				UserID:          rec.UserID,
				ClassID:         rec.ClassID,
				Status:          rec.Status,
				BookedAt:        rec.BookedAt,
				UpdatedAt:       rec.UpdatedAt,
				ClassTitle:      c.Title,
				ClassInstructor: c.Instructor,
				ScheduledAt:     c.ScheduledAt,
				DurationMinutes: c.DurationMinutes,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].ScheduledAt.Equal(result[j].ScheduledAt) {
			return result[i].ScheduledAt.Before(result[j].ScheduledAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (r *BookingReadStore) FindConfirmedParticipants(ctx context.Context, classID uuid.UUID) ([]*queries.ParticipantView, error) {
	result := []*queries.ParticipantView{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireClass(tx, classID); err != nil {
			return err
		}

		var bookings []bookingModel
		err := tx.Where("class_id = ? AND status = ?", classID.String(), booking.StatusConfirmed.String()).
			Order("booked_at ASC, id ASC").
			Find(&bookings).Error
		if err != nil {
			return wrapErr("failed to list participants", err)
		}
		for _, b := range bookings {
			rec, err := b.toRecord()
			if err != nil {
				return infra.WrapRepoErr("corrupt booking row", err)
			}
			result = append(result, &queries.ParticipantView{
				BookingID: rec.ID,
				UserID:    rec.UserID,
				BookedAt:  rec.BookedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
