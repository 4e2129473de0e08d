package reports

import "time"

// Export types
const (
	ReportTypeFarmers   = "farmers"
	ReportTypeLandlords = "landlords"
	ReportTypeSpaces    = "spaces"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

const (
	DateRangeAll     = "all"
	DateRangeDaily   = "daily"
	DateRangeWeekly  = "weekly"
	DateRangeMonthly = "monthly"
	DateRangeYearly  = "yearly"
	DateRangeCustom  = "custom"
)

// DashboardStats is the aggregate shown on every dashboard.
// TotalConnections equals TotalSpaces.
type DashboardStats struct {
	TotalFarmers     int64 `json:"total_farmers"`
	TotalLandlords   int64 `json:"total_landlords"`
	TotalSpaces      int64 `json:"total_spaces"`
	TotalConnections int64 `json:"total_connections"`
	TotalAcres       int64 `json:"total_acres"`
	TotalCrops       int64 `json:"total_crops"`
	TotalProofs      int64 `json:"total_proofs"`
}

type ExportRequest struct {
	Type      string
	Format    string
	DateRange string
	StartDate time.Time
	EndDate   time.Time
}

// Filtered reports whether the request restricts rows by created_at.
func (r ExportRequest) Filtered() bool {
	return !r.StartDate.IsZero() && !r.EndDate.IsZero()
}

type FarmerReportRow struct {
	ID                   uint      `json:"id"`
	UserID               uint      `json:"user_id"`
	Email                string    `json:"email"`
	PhoneNumber          string    `json:"phone_number"`
	LandHandlingCapacity int       `json:"land_handling_capacity"`
	PreferredLocations   string    `json:"preferred_locations"`
	CreatedAt            time.Time `json:"created_at"`
}

type LandlordReportRow struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	SoilType    string    `json:"soil_type"`
	Acres       int       `json:"acres"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

type SpaceReportRow struct {
	ID            uint      `json:"id"`
	FarmerEmail   string    `json:"farmer_email"`
	LandlordEmail string    `json:"landlord_email"`
	AdminEmail    string    `json:"admin_email"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	CropCount     int64     `json:"crop_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReportData carries the rows of exactly one report type.
type ReportData struct {
	Farmers   []FarmerReportRow
	Landlords []LandlordReportRow
	Spaces    []SpaceReportRow
}
