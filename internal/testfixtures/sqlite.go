package testfixtures

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated gorm handle backed by a temporary SQLite file.
// The handle is closed when the test ends.
func OpenDB(tb testing.TB, models ...interface{}) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "events.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(models...); err != nil {
		tb.Fatalf("failed to migrate: %v", err)
	}
	return db
}
