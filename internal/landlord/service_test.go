package landlord

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestEnv(t *testing.T) (*gorm.DB, Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&auth.User{}, &LandlordDetails{}, &auditlog.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Exec(`CREATE TABLE spaces (id INTEGER PRIMARY KEY, landlord_id INTEGER)`).Error; err != nil {
		t.Fatalf("failed to create spaces: %v", err)
	}

	audit := auditlog.NewService(auditlog.NewRepository(db))
	return db, NewService(NewRepository(db), auth.NewRepository(db), audit)
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role auth.Role) auth.Actor {
	t.Helper()
	u := auth.User{Email: email, PasswordHash: "x", Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return auth.Actor{UserID: u.ID, Email: u.Email, Role: u.Role, IP: "127.0.0.1"}
}

func validInput() Input {
	return Input{SoilType: "abc", Acres: 1, Location: "Nashik", ImagesList: []string{"/media/a_field.jpg"}}
}

func TestLandlordRegistrationBoundaries(t *testing.T) {
	db, svc := setupTestEnv(t)
	ctx := context.Background()
	lata := createTestUser(t, db, "lata@example.com", auth.RoleLandlord)

	bad := validInput()
	bad.SoilType = "ab"
	if _, err := svc.Register(ctx, lata, bad); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for 2 char soil type, got %v", err)
	}
	bad = validInput()
	bad.Acres = 0
	if _, err := svc.Register(ctx, lata, bad); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for zero acres, got %v", err)
	}

	l, err := svc.Register(ctx, lata, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if l.UserID != lata.UserID || len(l.ImagesList) != 1 {
		t.Fatalf("unexpected landlord %+v", l)
	}

	if _, err := svc.Register(ctx, lata, validInput()); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on duplicate profile, got %v", err)
	}

	var audits int64
	db.Model(&auditlog.AuditLog{}).Where("action = ?", "LANDLORD_REGISTERED").Count(&audits)
	if audits != 1 {
		t.Errorf("expected one audit entry, got %d", audits)
	}
}

func TestListFiltersByLocation(t *testing.T) {
	db, svc := setupTestEnv(t)
	ctx := context.Background()
	a := createTestUser(t, db, "a@example.com", auth.RoleLandlord)
	b := createTestUser(t, db, "b@example.com", auth.RoleLandlord)

	in := validInput()
	if _, err := svc.Register(ctx, a, in); err != nil {
		t.Fatalf("register a: %v", err)
	}
	in.Location = "Pune"
	if _, err := svc.Register(ctx, b, in); err != nil {
		t.Fatalf("register b: %v", err)
	}

	all, _ := svc.List(ctx, "")
	if len(all) != 2 {
		t.Fatalf("expected 2 landlords, got %d", len(all))
	}
	pune, _ := svc.List(ctx, "PUN")
	if len(pune) != 1 || pune[0].UserID != b.UserID {
		t.Fatalf("expected only the Pune landlord, got %+v", pune)
	}
	if pune[0].User == nil || pune[0].User.Email != "b@example.com" {
		t.Errorf("expected user to be preloaded")
	}

	for _, q := range []string{"_", "%", "P_ne", `\`} {
		if got, _ := svc.List(ctx, q); len(got) != 0 {
			t.Errorf("expected %q to match literally and find nothing, got %d", q, len(got))
		}
	}
}

func TestListMatchesWildcardCharactersLiterally(t *testing.T) {
	db, svc := setupTestEnv(t)
	ctx := context.Background()
	a := createTestUser(t, db, "a@example.com", auth.RoleLandlord)
	b := createTestUser(t, db, "b@example.com", auth.RoleLandlord)

	in := validInput()
	in.Location = "Plot_7 Satara"
	if _, err := svc.Register(ctx, a, in); err != nil {
		t.Fatalf("register a: %v", err)
	}
	in.Location = "Plot 77 Satara"
	if _, err := svc.Register(ctx, b, in); err != nil {
		t.Fatalf("register b: %v", err)
	}

	got, err := svc.List(ctx, "plot_7")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].UserID != a.UserID {
		t.Fatalf("expected only the underscore location, got %+v", got)
	}
}

func TestLandlordUpdateAndDelete(t *testing.T) {
	db, svc := setupTestEnv(t)
	ctx := context.Background()
	admin := createTestUser(t, db, "admin@example.com", auth.RoleAdmin)
	lata := createTestUser(t, db, "lata@example.com", auth.RoleLandlord)
	other := createTestUser(t, db, "other@example.com", auth.RoleLandlord)

	l, err := svc.Register(ctx, admin, Input{UserID: &lata.UserID, SoilType: "Clay", Acres: 3, Location: "Satara"})
	if err != nil {
		t.Fatalf("admin register: %v", err)
	}

	if _, err := svc.Update(ctx, other, lata.UserID, validInput()); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for another landlord, got %v", err)
	}
	updated, err := svc.Update(ctx, lata, lata.UserID, Input{SoilType: "Red soil", Acres: 8, Location: "  Kolhapur "})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Kolhapur" || updated.Acres != 8 {
		t.Errorf("unexpected update result %+v", updated)
	}

	db.Exec(`INSERT INTO spaces (landlord_id) VALUES (?)`, l.ID)
	if err := svc.Delete(ctx, admin, l.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict while paired, got %v", err)
	}
	db.Exec(`DELETE FROM spaces`)
	if err := svc.Delete(ctx, admin, l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
