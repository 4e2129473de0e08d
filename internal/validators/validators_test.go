package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"gorm.io/gorm"
)

func TestValidateFarmer(t *testing.T) {
	cases := []struct {
		capacity int
		ok       bool
	}{
		{-5, false},
		{0, false},
		{1, true},
		{40, true},
	}
	for _, tc := range cases {
		err := ValidateFarmer(tc.capacity)
		if tc.ok && err != nil {
			t.Errorf("capacity %d: unexpected error %v", tc.capacity, err)
		}
		if !tc.ok && !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("capacity %d: expected validation error, got %v", tc.capacity, err)
		}
	}
}

func TestValidateLandlord(t *testing.T) {
	cases := []struct {
		name     string
		soil     string
		acres    int
		location string
		images   []string
		ok       bool
	}{
		{"valid", "Loamy", 10, "Nashik", []string{"/media/a.jpg"}, true},
		{"no images", "Clay", 1, "abc", nil, true},
		{"blank soil", "   ", 10, "Nashik", nil, false},
		{"two char soil", "ab", 10, "Nashik", nil, false},
		{"three char soil", "abc", 10, "Nashik", nil, true},
		{"padded soil", " ab ", 10, "Nashik", nil, false},
		{"zero acres", "Loamy", 0, "Nashik", nil, false},
		{"short location", "Loamy", 10, "ab", nil, false},
		{"padded short location", "Loamy", 10, "  ab  ", nil, false},
		{"blank image", "Loamy", 10, "Pune", []string{"a.jpg", " "}, false},
		{"two char devanagari soil", "मि", 5, "Pune", nil, false},
		{"two char accented soil", "éé", 5, "Pune", nil, false},
		{"two char cjk location", "Loam", 5, "黒土", nil, false},
		{"three char devanagari soil", "काली", 5, "पुणे", nil, true},
		{"three char cjk location", "Loam", 5, "北海道", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLandlord(tc.soil, tc.acres, tc.location, tc.images)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tc.ok && !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"98765 43210":     "9876543210",
		"+91-98765-43210": "9876543210",
	}
	for in, want := range cases {
		got, err := NormalizePhone(in)
		if err != nil || got != want {
			t.Errorf("NormalizePhone(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := NormalizePhone("12345"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for short phone, got %v", err)
	}
}

func TestEmailLookups(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT, role TEXT)`).Error; err != nil {
		t.Fatalf("create users: %v", err)
	}
	if err := db.Exec(`INSERT INTO users (email, role) VALUES ('boss@example.com', 'admin'), ('ravi@example.com', 'farmer')`).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}
	ctx := context.Background()

	if ok, err := IsEmailRegistered(ctx, db, "Ravi@Example.com"); err != nil || !ok {
		t.Errorf("expected ravi registered, got %v %v", ok, err)
	}
	if ok, _ := IsEmailRegistered(ctx, db, "nobody@example.com"); ok {
		t.Errorf("expected nobody unregistered")
	}
	if ok, _ := IsAdmin(ctx, db, "boss@example.com"); !ok {
		t.Errorf("expected boss to be admin")
	}
	if ok, _ := IsAdmin(ctx, db, "ravi@example.com"); ok {
		t.Errorf("expected ravi not to be admin")
	}
}
