package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	dbutil "github.com/router-for-me/guildrpc/internal/db"
	"gorm.io/gorm"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	sqlDB, errDB := conn.DB()
	if errDB != nil {
		t.Fatalf("sql db: %v", errDB)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

func countRows(t *testing.T, conn *gorm.DB, table string, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if errCount := conn.Table(table).Where(where, args...).Count(&n).Error; errCount != nil {
		t.Fatalf("count %s: %v", table, errCount)
	}
	return n
}

func TestWrapErrorMapsRecordNotFound(t *testing.T) {
	err := wrapError("get", "logs settings", gorm.ErrRecordNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var storeErr *Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if storeErr.Entity != "logs settings" || storeErr.Op != "get" {
		t.Fatalf("unexpected error fields: %+v", storeErr)
	}
	if wrapError("get", "x", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestDetachIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := detach(ctx).Err(); err != nil {
		t.Fatalf("expected detached context to stay live, got %v", err)
	}
}
