// Package sqlitestore is the embedded single-node store. SQLite has no row
// locks, so the store runs on a single connection: every transaction holds
// the whole database until it ends, which serialises booking attempts.
package sqlitestore

import (
	"log/slog"
	"strings"

	"class-booking/internal/infra"
	"class-booking/internal/pkg/errs"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open establishes a SQLite connection and migrates the schema.
func Open(path string) (*gorm.DB, func(), error) {
	if path == "" {
		return nil, nil, errs.New("sqlite path is required")
	}

	db, err := gorm.Open(sqlite.Open(withBusyTimeout(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to open sqlite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to access sqlite pool")
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&classModel{}, &bookingModel{}, &eventModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, nil, errs.Wrap(err, "failed to migrate sqlite schema")
	}

	slog.Info("sqlite store initialized", "path", path)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			slog.Warn("failed to close sqlite database", "error", err)
		}
	}
	return db, cleanup, nil
}

// withBusyTimeout appends the busy timeout pragma, keeping any query
// parameters already present on path.
func withBusyTimeout(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)"
}

// wrapErr classifies SQLite errors into repository kinds.
func wrapErr(msg string, err error) error {
	switch {
	case errs.Is(err, gorm.ErrRecordNotFound):
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	case err == nil:
		return infra.WrapRepoErr(msg, nil, infra.KindDBFailure)
	}

	text := err.Error()
	switch {
	case strings.Contains(text, "UNIQUE constraint failed"):
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	case strings.Contains(text, "CHECK constraint failed"):
		return infra.WrapRepoErr(msg, err, infra.KindValidation)
	case strings.Contains(text, "database is locked"), strings.Contains(text, "SQLITE_BUSY"):
		return infra.WrapRepoErr(msg, err, infra.KindConflict)
	default:
		return infra.WrapRepoErr(msg, err, infra.KindDBFailure)
	}
}
