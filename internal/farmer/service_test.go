package farmer

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db  *gorm.DB
	svc Service
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&auth.User{}, &FarmerDetails{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Exec(`CREATE TABLE spaces (id INTEGER PRIMARY KEY, farmer_id INTEGER)`).Error; err != nil {
		t.Fatalf("failed to create spaces: %v", err)
	}

	return &testEnv{db: db, svc: NewService(NewRepository(db), auth.NewRepository(db), nil)}
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role auth.Role) auth.Actor {
	t.Helper()
	u := auth.User{Email: email, PasswordHash: "x", Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return auth.Actor{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func TestFarmerSelfRegistration(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	ravi := createTestUser(t, env.db, "ravi@example.com", auth.RoleFarmer)

	if _, err := env.svc.Register(ctx, ravi, Input{LandHandlingCapacity: 0}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for zero capacity, got %v", err)
	}

	f, err := env.svc.Register(ctx, ravi, Input{
		LandHandlingCapacity: 1,
		PhoneNumber:          "+91 98765 43210",
		PreferredLocations:   []string{"Nashik", "Pune"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if f.UserID != ravi.UserID || f.PhoneNumber == nil || *f.PhoneNumber != "9876543210" {
		t.Fatalf("unexpected profile %+v", f)
	}

	if _, err := env.svc.Register(ctx, ravi, Input{LandHandlingCapacity: 3}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on second profile, got %v", err)
	}

	got, err := env.svc.GetByUserID(ctx, ravi, ravi.UserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.PreferredLocations) != 2 || got.PreferredLocations[1] != "Pune" {
		t.Errorf("preferred locations did not round trip: %v", got.PreferredLocations)
	}
}

func TestAdminRegistersForFarmer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := createTestUser(t, env.db, "admin@example.com", auth.RoleAdmin)
	ravi := createTestUser(t, env.db, "ravi@example.com", auth.RoleFarmer)
	lata := createTestUser(t, env.db, "lata@example.com", auth.RoleLandlord)

	if _, err := env.svc.Register(ctx, admin, Input{LandHandlingCapacity: 5}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error without user_id, got %v", err)
	}
	if _, err := env.svc.Register(ctx, admin, Input{UserID: &lata.UserID, LandHandlingCapacity: 5}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for landlord user, got %v", err)
	}
	missing := uint(999)
	if _, err := env.svc.Register(ctx, admin, Input{UserID: &missing, LandHandlingCapacity: 5}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}

	f, err := env.svc.Register(ctx, admin, Input{UserID: &ravi.UserID, LandHandlingCapacity: 5})
	if err != nil {
		t.Fatalf("admin register: %v", err)
	}
	if f.UserID != ravi.UserID {
		t.Fatalf("profile attached to wrong user: %d", f.UserID)
	}

	if _, err := env.svc.Register(ctx, lata, Input{LandHandlingCapacity: 5}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for landlord, got %v", err)
	}
}

func TestUpdateOwnership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := createTestUser(t, env.db, "admin@example.com", auth.RoleAdmin)
	ravi := createTestUser(t, env.db, "ravi@example.com", auth.RoleFarmer)
	other := createTestUser(t, env.db, "other@example.com", auth.RoleFarmer)

	if _, err := env.svc.Register(ctx, ravi, Input{LandHandlingCapacity: 4}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := env.svc.Update(ctx, other, ravi.UserID, Input{LandHandlingCapacity: 9}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for another farmer, got %v", err)
	}

	f, err := env.svc.Update(ctx, ravi, ravi.UserID, Input{LandHandlingCapacity: 9, PreferredLocations: []string{"Satara"}})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if f.LandHandlingCapacity != 9 {
		t.Errorf("expected capacity 9, got %d", f.LandHandlingCapacity)
	}

	if _, err := env.svc.Update(ctx, admin, ravi.UserID, Input{LandHandlingCapacity: -1}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation on update, got %v", err)
	}
	if _, err := env.svc.Update(ctx, admin, other.UserID, Input{LandHandlingCapacity: 2}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for farmer without profile, got %v", err)
	}
}

func TestDeleteRefusesPairedFarmer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := createTestUser(t, env.db, "admin@example.com", auth.RoleAdmin)
	ravi := createTestUser(t, env.db, "ravi@example.com", auth.RoleFarmer)

	f, err := env.svc.Register(ctx, ravi, Input{LandHandlingCapacity: 4})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	env.db.Exec(`INSERT INTO spaces (farmer_id) VALUES (?)`, f.ID)

	if err := env.svc.Delete(ctx, ravi, f.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
	if err := env.svc.Delete(ctx, admin, f.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict while paired, got %v", err)
	}

	env.db.Exec(`DELETE FROM spaces`)
	if err := env.svc.Delete(ctx, admin, f.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.svc.Delete(ctx, admin, f.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
