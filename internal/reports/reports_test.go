package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/crop"
	"github.com/krishiconnect/krishi-backend/internal/farmer"
	"github.com/krishiconnect/krishi-backend/internal/landlord"
	"github.com/krishiconnect/krishi-backend/internal/space"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&auth.User{}, &farmer.FarmerDetails{}, &landlord.LandlordDetails{}, &space.Space{}, &crop.Crop{}, &crop.Proof{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role auth.Role) auth.Actor {
	t.Helper()
	u := auth.User{Email: email, PasswordHash: "x", Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return auth.Actor{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func createFarmer(t *testing.T, db *gorm.DB, email string, capacity int, locations ...string) *farmer.FarmerDetails {
	t.Helper()
	u := createTestUser(t, db, email, auth.RoleFarmer)
	f := &farmer.FarmerDetails{UserID: u.UserID, LandHandlingCapacity: capacity, PreferredLocations: locations}
	if err := db.Omit("User").Create(f).Error; err != nil {
		t.Fatalf("create farmer: %v", err)
	}
	return f
}

// seed creates two farmers, one landlord, one space with one crop and one proof.
func seed(t *testing.T, db *gorm.DB) auth.Actor {
	t.Helper()
	admin := createTestUser(t, db, "admin@example.com", auth.RoleAdmin)
	f := createFarmer(t, db, "ravi@example.com", 3, "Pune", "Nashik")
	createFarmer(t, db, "mohan@example.com", 5)

	lu := createTestUser(t, db, "lata@example.com", auth.RoleLandlord)
	l := &landlord.LandlordDetails{UserID: lu.UserID, SoilType: "Black", Acres: 10, Location: "Satara"}
	if err := db.Omit("User").Create(l).Error; err != nil {
		t.Fatalf("create landlord: %v", err)
	}

	sp := &space.Space{FarmerID: f.ID, LandlordID: l.ID, AdminID: admin.UserID, Description: "cotton", Progress: datatypes.JSON("{}")}
	if err := db.Omit("Farmer", "Landlord", "Admin").Create(sp).Error; err != nil {
		t.Fatalf("create space: %v", err)
	}
	c := &crop.Crop{CropName: "Cotton", Duration: "160 days", Steps: []crop.Step{{Name: "Sowing", Proofs: []string{}}}, SpaceID: &sp.ID}
	if err := db.Omit("Space").Create(c).Error; err != nil {
		t.Fatalf("create crop: %v", err)
	}
	if err := db.Omit("Crop").Create(&crop.Proof{FileURL: "/media/a.jpg", CropID: c.ID, StepIndex: 0, UploadedBy: admin.UserID}).Error; err != nil {
		t.Fatalf("create proof: %v", err)
	}
	return admin
}

func TestDashboardTotals(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	svc := NewReportService(NewRepository(db), NewReportExporter(), nil, nil)

	stats, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	want := DashboardStats{
		TotalFarmers:     2,
		TotalLandlords:   1,
		TotalSpaces:      1,
		TotalConnections: 1,
		TotalAcres:       18,
		TotalCrops:       1,
		TotalProofs:      1,
	}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}
}

func TestDashboardEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(NewRepository(db), NewReportExporter(), nil, nil)

	stats, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats != (DashboardStats{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestDashboardCachedInRedis(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := NewReportService(NewRepository(db), NewReportExporter(), nil, rdb)
	ctx := context.Background()

	if _, err := svc.GetDashboard(ctx); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !mr.Exists(dashboardCacheKey) {
		t.Fatalf("expected dashboard to be cached")
	}

	createFarmer(t, db, "late@example.com", 1)
	stats, _ := svc.GetDashboard(ctx)
	if stats.TotalFarmers != 2 {
		t.Errorf("expected cached count 2, got %d", stats.TotalFarmers)
	}

	mr.FastForward(DashboardCacheTTL + time.Second)
	stats, _ = svc.GetDashboard(ctx)
	if stats.TotalFarmers != 3 || stats.TotalAcres != 19 {
		t.Errorf("expected fresh stats after ttl, got %+v", stats)
	}
}

func TestExportCSV(t *testing.T) {
	db := setupTestDB(t)
	admin := seed(t, db)
	svc := NewReportService(NewRepository(db), NewReportExporter(), nil, nil)

	out, fname, mime, err := svc.Export(context.Background(), admin, ExportRequest{Type: ReportTypeFarmers, Format: FormatCSV})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if mime != "text/csv" || !strings.HasPrefix(fname, "farmers_report_") || !strings.HasSuffix(fname, ".csv") {
		t.Errorf("unexpected file %s %s", fname, mime)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][2] != "email" || records[1][2] != "ravi@example.com" || records[1][5] != "Pune; Nashik" {
		t.Errorf("unexpected csv %v", records)
	}

	out, _, _, err = svc.Export(context.Background(), admin, ExportRequest{Type: ReportTypeSpaces, Format: FormatCSV})
	if err != nil {
		t.Fatalf("export spaces: %v", err)
	}
	records, _ = csv.NewReader(bytes.NewReader(out)).ReadAll()
	if len(records) != 2 || records[1][1] != "ravi@example.com" || records[1][2] != "lata@example.com" || records[1][6] != "1" {
		t.Errorf("unexpected spaces csv %v", records)
	}
}

func TestExportExcelAndPDF(t *testing.T) {
	db := setupTestDB(t)
	admin := seed(t, db)
	svc := NewReportService(NewRepository(db), NewReportExporter(), nil, nil)
	ctx := context.Background()

	out, fname, _, err := svc.Export(ctx, admin, ExportRequest{Type: ReportTypeLandlords, Format: FormatExcel})
	if err != nil {
		t.Fatalf("excel export: %v", err)
	}
	if !strings.HasSuffix(fname, ".xlsx") {
		t.Errorf("unexpected file name %s", fname)
	}
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	v, _ := f.GetCellValue("Landlords Report", "G2")
	if v != "Satara" {
		t.Errorf("expected location in G2, got %q", v)
	}

	out, _, mime, err := svc.Export(ctx, admin, ExportRequest{Type: ReportTypeSpaces, Format: FormatPDF})
	if err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	if mime != "application/pdf" || !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("expected pdf output, got %s", mime)
	}
}

func TestExportRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	admin := seed(t, db)
	svc := NewReportService(NewRepository(db), NewReportExporter(), nil, nil)
	ctx := context.Background()

	if _, _, _, err := svc.Export(ctx, admin, ExportRequest{Type: ReportTypeFarmers, Format: "docx"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for unknown format, got %v", err)
	}
	if _, _, _, err := svc.Export(ctx, admin, ExportRequest{Type: "crops", Format: FormatCSV}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for unknown type, got %v", err)
	}
	farmerActor := auth.Actor{UserID: 99, Role: auth.RoleFarmer}
	if _, _, _, err := svc.Export(ctx, farmerActor, ExportRequest{Type: ReportTypeFarmers, Format: FormatCSV}); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected forbidden for farmer, got %v", err)
	}
}

func TestExportHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	admin := seed(t, db)

	h := NewHandler(NewReportService(NewRepository(db), NewReportExporter(), nil, nil))
	r := gin.New()
	r.GET("/admin/reports/export", func(c *gin.Context) {
		auth.SetActor(c, admin)
		c.Next()
	}, h.Export)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"csv", "type=landlords&format=csv", http.StatusOK},
		{"unknown format", "type=landlords&format=docx", http.StatusBadRequest},
		{"missing type", "format=csv", http.StatusBadRequest},
		{"bad range", "type=farmers&date_range=custom&start_date=2024-05-01", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/reports/export?"+tt.query, nil)
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.status == http.StatusOK && !strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment; filename=landlords_report_") {
				t.Errorf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
			}
		})
	}
}

func TestGetDateRange(t *testing.T) {
	start, end, err := GetDateRange(DateRangeCustom, "2024-06-01", "2024-06-30")
	if err != nil {
		t.Fatalf("custom range: %v", err)
	}
	if start.Day() != 1 || end.Day() != 30 || end.Hour() != 23 {
		t.Errorf("unexpected range %s - %s", start, end)
	}

	if s, e, err := GetDateRange("", "", ""); err != nil || !s.IsZero() || !e.IsZero() {
		t.Errorf("expected no filter for empty range, got %s %s %v", s, e, err)
	}
	if _, _, err := GetDateRange(DateRangeCustom, "2024-06-30", "2024-06-01"); err == nil {
		t.Errorf("expected error for inverted range")
	}
	if _, _, err := GetDateRange("fortnightly", "", ""); err == nil {
		t.Errorf("expected error for unknown preset")
	}

	s, e, _ := GetDateRange(DateRangeWeekly, "", "")
	if d := e.Sub(s); d < 6*24*time.Hour || d > 7*24*time.Hour {
		t.Errorf("weekly range spans %s", d)
	}
}
