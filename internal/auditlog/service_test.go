package auditlog

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuditDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// users is owned by the auth package; a minimal table is enough for the join.
	if err := db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT)`).Error; err != nil {
		t.Fatalf("failed to create users: %v", err)
	}
	if err := db.AutoMigrate(&AuditLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestLogActionAndFilter(t *testing.T) {
	db := setupAuditDB(t)
	if err := db.Exec(`INSERT INTO users (id, email) VALUES (7, 'admin@example.com')`).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	if err := svc.LogAction(ctx, Entry{UserID: Ptr(7), Action: "SPACE_CREATED", TargetType: "space", TargetID: Ptr(1), IP: "10.0.0.1"}); err != nil {
		t.Fatalf("log action: %v", err)
	}
	if err := svc.LogAction(ctx, Entry{Action: "LOGIN_FAILED", Status: StatusFailure, Details: map[string]interface{}{"email": "x@example.com"}}); err != nil {
		t.Fatalf("log action: %v", err)
	}

	page, err := svc.GetAuditLogs(ctx, AuditLogFilter{Action: "space"})
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Fatalf("expected one space entry, got total=%d len=%d", page.Total, len(page.Data))
	}
	got := page.Data[0]
	if got.Status != StatusSuccess {
		t.Errorf("expected default status success, got %q", got.Status)
	}
	if got.UserEmail == nil || *got.UserEmail != "admin@example.com" {
		t.Errorf("expected joined user email, got %v", got.UserEmail)
	}

	failures, err := svc.GetAuditLogs(ctx, AuditLogFilter{Status: StatusFailure})
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if failures.Total != 1 || failures.Data[0].UserID != nil {
		t.Fatalf("expected one anonymous failure, got %+v", failures)
	}
}

func TestFilterByTarget(t *testing.T) {
	db := setupAuditDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	for _, e := range []Entry{
		{Action: "SPACE_CREATED", TargetType: "space", TargetID: Ptr(1)},
		{Action: "SPACE_UPDATED", TargetType: "space", TargetID: Ptr(1)},
		{Action: "SPACE_CREATED", TargetType: "space", TargetID: Ptr(2)},
		{Action: "CROP_CREATED", TargetType: "crop", TargetID: Ptr(1)},
	} {
		if err := svc.LogAction(ctx, e); err != nil {
			t.Fatalf("log action: %v", err)
		}
	}

	page, err := svc.GetAuditLogs(ctx, AuditLogFilter{TargetType: "Space", TargetID: Ptr(1)})
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 entries for space 1, got %d", page.Total)
	}
	if page.Data[0].Action != "SPACE_UPDATED" {
		t.Errorf("expected newest first, got %s", page.Data[0].Action)
	}

	empty, err := svc.GetAuditLogs(ctx, AuditLogFilter{TargetType: "landlord"})
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if empty.Total != 0 || empty.Data == nil {
		t.Errorf("expected an empty non-nil page, got %+v", empty)
	}
	literal, err := svc.GetAuditLogs(ctx, AuditLogFilter{Action: "%"})
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if literal.Total != 0 {
		t.Errorf("expected %% to match literally, got %d entries", literal.Total)
	}
}

func TestGetAuditLogByIDNotFound(t *testing.T) {
	svc := NewService(NewRepository(setupAuditDB(t)))

	_, err := svc.GetAuditLogByID(context.Background(), 42)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
