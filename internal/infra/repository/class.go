package repository

import (
	"context"
	"errors"

	"class-booking/internal/domain/class"
	"class-booking/internal/infra"
	"class-booking/internal/infra/db"
	"class-booking/internal/infra/record"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const classColumns = `id, title, description, instructor, max_capacity, scheduled_at,
	duration_minutes, created_by, created_at, updated_at`

const lockClassByID = `SELECT ` + classColumns + ` FROM classes WHERE id = $1 FOR UPDATE`

const insertClass = `INSERT INTO classes (` + classColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const updateClass = `UPDATE classes
	SET title = $2, description = $3, instructor = $4, max_capacity = $5,
	    scheduled_at = $6, duration_minutes = $7, updated_at = $8
	WHERE id = $1`

const deleteClass = `DELETE FROM classes WHERE id = $1`

type ClassRepository struct {
	db db.DBTX
}

func NewClassRepository(db db.DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) LockByID(ctx context.Context, id uuid.UUID) (*class.Class, error) {
	rec, err := scanClass(r.db.QueryRow(ctx, lockClassByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("class not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock class", err)
	}
	return rec.ToDomain(), nil
}

func (r *ClassRepository) Insert(ctx context.Context, c *class.Class) error {
	rec, err := record.FromClass(c)
	if err != nil {
		return infra.WrapRepoErr("invalid class record", err, infra.KindValidation)
	}

	_, err = r.db.Exec(ctx, insertClass,
		rec.ID, rec.Title, rec.Description, rec.Instructor, rec.Capacity, rec.ScheduledAt,
		rec.DurationMinutes, rec.CreatedBy, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert class", err)
	}
	return nil
}

func (r *ClassRepository) Update(ctx context.Context, c *class.Class) error {
	rec, err := record.FromClass(c)
	if err != nil {
		return infra.WrapRepoErr("invalid class record", err, infra.KindValidation)
	}

	tag, err := r.db.Exec(ctx, updateClass,
		rec.ID, rec.Title, rec.Description, rec.Instructor, rec.Capacity,
		rec.ScheduledAt, rec.DurationMinutes, rec.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update class", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("class not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteClass, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete class", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("class not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanClass(row pgx.Row) (record.Class, error) {
	var rec record.Class
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Description, &rec.Instructor, &rec.Capacity, &rec.ScheduledAt,
		&rec.DurationMinutes, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
