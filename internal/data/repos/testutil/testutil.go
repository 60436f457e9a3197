package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/beaverchoice/fulfillment-backend/internal/data/db"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

var dbCounter atomic.Int64

// Logger returns a development logger for tests.
func Logger(t *testing.T) *logger.Logger {
	t.Helper()
	logg, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(logg.Sync)
	return logg
}

// DB opens a fresh in-memory sqlite database with the full schema migrated.
// Each call gets its own named memory database so tests never share state.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A single connection keeps the shared-cache memory database alive for
	// the whole test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrateAll(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gormDB
}
