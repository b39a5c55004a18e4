package sqlitestore

import (
	"time"

	"class-booking/internal/infra/record"

	"github.com/google/uuid"
)

type classModel struct {
	ID              string    `gorm:"primaryKey;type:text"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Description     *string   `gorm:"type:text"`
	Instructor      *string   `gorm:"type:varchar(255)"`
	MaxCapacity     int       `gorm:"not null;check:max_capacity > 0"`
	ScheduledAt     time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"not null;default:60;check:duration_minutes >= 15"`
	CreatedBy       *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (classModel) TableName() string { return "classes" }

type bookingModel struct {
	ID        string     `gorm:"primaryKey;type:text"`
	UserID    string     `gorm:"type:text;not null;uniqueIndex:bookings_user_class_key,priority:1"`
	ClassID   string     `gorm:"type:text;not null;uniqueIndex:bookings_user_class_key,priority:2;index:idx_bookings_class_status,priority:1"`
	Status    string     `gorm:"type:varchar(20);not null;index:idx_bookings_class_status,priority:2"`
	BookedAt  time.Time  `gorm:"not null"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (bookingModel) TableName() string { return "bookings" }

type eventModel struct {
	ID          string     `gorm:"primaryKey;type:text"`
	EventType   string     `gorm:"type:varchar(50);not null"`
	BookingID   string     `gorm:"type:text;not null"`
	UserID      string     `gorm:"type:text;not null"`
	ClassID     string     `gorm:"type:text;not null"`
	Payload     []byte     `gorm:"not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (eventModel) TableName() string { return "booking_events" }

// Times are stored in UTC so text comparison in SQL matches time order.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseUUIDPtr(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

func classModelFromRecord(r record.Class) classModel {
	return classModel{
		ID:              r.ID.String(),
		Title:           r.Title,
		Description:     r.Description,
		Instructor:      r.Instructor,
		MaxCapacity:     r.Capacity,
		ScheduledAt:     utc(r.ScheduledAt),
		DurationMinutes: r.DurationMinutes,
		CreatedBy:       uuidPtrString(r.CreatedBy),
		CreatedAt:       utc(r.CreatedAt),
		UpdatedAt:       utc(r.UpdatedAt),
	}
}

func (m classModel) toRecord() (record.Class, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return record.Class{}, err
	}
	return record.Class{
		ID:              id,
		Title:           m.Title,
		Description:     m.Description,
		Instructor:      m.Instructor,
		Capacity:        m.MaxCapacity,
		ScheduledAt:     m.ScheduledAt,
		DurationMinutes: m.DurationMinutes,
		CreatedBy:       parseUUIDPtr(m.CreatedBy),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

func bookingModelFromRecord(r record.Booking) bookingModel {
	return bookingModel{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		ClassID:   r.ClassID.String(),
		Status:    r.Status,
		BookedAt:  utc(r.BookedAt),
		UpdatedAt: utcPtr(r.UpdatedAt),
	}
}

func (m bookingModel) toRecord() (record.Booking, error) {
	var (
		r   record.Booking
		err error
	)
	if r.ID, err = uuid.Parse(m.ID); err != nil {
		return r, err
	}
	if r.UserID, err = uuid.Parse(m.UserID); err != nil {
		return r, err
	}
	if r.ClassID, err = uuid.Parse(m.ClassID); err != nil {
		return r, err
	}
	r.Status = m.Status
	r.BookedAt = m.BookedAt
	r.UpdatedAt = m.UpdatedAt
	return r, nil
}

func eventModelFromRecord(r record.Event) eventModel {
	return eventModel{
		ID:         r.ID.String(),
		EventType:  r.Type,
		BookingID:  r.BookingID.String(),
		UserID:     r.UserID.String(),
		ClassID:    r.ClassID.String(),
		Payload:    r.Payload,
		OccurredAt: utc(r.OccurredAt),
	}
}

func (m eventModel) toRecord() (record.Event, error) {
	var (
		r   record.Event
		err error
	)
	if r.ID, err = uuid.Parse(m.ID); err != nil {
		return r, err
	}
	if r.BookingID, err = uuid.Parse(m.BookingID); err != nil {
		return r, err
	}
	if r.UserID, err = uuid.Parse(m.UserID); err != nil {
		return r, err
	}
	if r.ClassID, err = uuid.Parse(m.ClassID); err != nil {
		return r, err
	}
	r.Type = m.EventType
	r.Payload = m.Payload
	r.OccurredAt = m.OccurredAt
	return r, nil
}
