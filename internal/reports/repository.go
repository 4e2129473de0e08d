package reports

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// ReportRepository reads aggregates and export rows straight from the
// domain tables.
type ReportRepository interface {
	GetDashboardStats(ctx context.Context) (DashboardStats, error)
	GetFarmers(ctx context.Context, req ExportRequest) ([]FarmerReportRow, error)
	GetLandlords(ctx context.Context, req ExportRequest) ([]LandlordReportRow, error)
	GetSpaces(ctx context.Context, req ExportRequest) ([]SpaceReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReportRepository {
	return &repository{db: db}
}

func (r *repository) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats
	db := r.db.WithContext(ctx)

	counts := []struct {
		table string
		dest  *int64
	}{
		{"farmer_details", &s.TotalFarmers},
		{"landlord_details", &s.TotalLandlords},
		{"spaces", &s.TotalSpaces},
		{"crops", &s.TotalCrops},
		{"proofs", &s.TotalProofs},
	}
	for _, c := range counts {
		if err := db.Table(c.table).Count(c.dest).Error; err != nil {
			return s, err
		}
	}

	var landlordAcres, farmerCapacity int64
	if err := db.Table("landlord_details").Select("COALESCE(SUM(acres), 0)").Scan(&landlordAcres).Error; err != nil {
		return s, err
	}
	if err := db.Table("farmer_details").Select("COALESCE(SUM(land_handling_capacity), 0)").Scan(&farmerCapacity).Error; err != nil {
		return s, err
	}

	s.TotalConnections = s.TotalSpaces
	s.TotalAcres = landlordAcres + farmerCapacity
	return s, nil
}

func (r *repository) GetFarmers(ctx context.Context, req ExportRequest) ([]FarmerReportRow, error) {
	var out []FarmerReportRow
	q := r.db.WithContext(ctx).Table("farmer_details f").
		Select(`
			f.id,
			f.user_id,
			u.email,
			COALESCE(f.phone_number, '') as phone_number,
			f.land_handling_capacity,
			COALESCE(CAST(f.preferred_locations AS TEXT), '') as preferred_locations,
			f.created_at
		`).
		Joins("LEFT JOIN users u ON u.id = f.user_id")
	if req.Filtered() {
		q = q.Where("f.created_at BETWEEN ? AND ?", req.StartDate, req.EndDate)
	}
	if err := q.Order("f.id ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		out[i].PreferredLocations = joinJSONList(out[i].PreferredLocations)
	}
	return out, nil
}

func (r *repository) GetLandlords(ctx context.Context, req ExportRequest) ([]LandlordReportRow, error) {
	var out []LandlordReportRow
	q := r.db.WithContext(ctx).Table("landlord_details l").
		Select(`
			l.id,
			l.user_id,
			u.email,
			COALESCE(l.phone_number, '') as phone_number,
			l.soil_type,
			l.acres,
			l.location,
			l.created_at
		`).
		Joins("LEFT JOIN users u ON u.id = l.user_id")
	if req.Filtered() {
		q = q.Where("l.created_at BETWEEN ? AND ?", req.StartDate, req.EndDate)
	}
	err := q.Order("l.id ASC").Scan(&out).Error
	return out, err
}

func (r *repository) GetSpaces(ctx context.Context, req ExportRequest) ([]SpaceReportRow, error) {
	var out []SpaceReportRow
	q := r.db.WithContext(ctx).Table("spaces s").
		Select(`
			s.id,
			fu.email as farmer_email,
			lu.email as landlord_email,
			a.email as admin_email,
			l.location,
			COALESCE(s.description, '') as description,
			(SELECT COUNT(*) FROM crops c WHERE c.space_id = s.id) as crop_count,
			s.created_at
		`).
		Joins("LEFT JOIN farmer_details f ON f.id = s.farmer_id").
		Joins("LEFT JOIN users fu ON fu.id = f.user_id").
		Joins("LEFT JOIN landlord_details l ON l.id = s.landlord_id").
		Joins("LEFT JOIN users lu ON lu.id = l.user_id").
		Joins("LEFT JOIN users a ON a.id = s.admin_id")
	if req.Filtered() {
		q = q.Where("s.created_at BETWEEN ? AND ?", req.StartDate, req.EndDate)
	}
	err := q.Order("s.id ASC").Scan(&out).Error
	return out, err
}

// joinJSONList renders a stored JSON string array as "a; b".
func joinJSONList(raw string) string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return raw
	}
	return strings.Join(items, "; ")
}
