package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/xuri/excelize/v2"
)

const (
	mimeCSV   = "text/csv"
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF   = "application/pdf"
)

// ReportExporter renders report rows as csv, excel or pdf.
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct {
	now func() time.Time
}

func NewReportExporter() ReportExporter {
	return &reportExporter{now: time.Now}
}

// table is the format independent shape every report is reduced to.
type table struct {
	title   string
	headers []string
	widths  []float64
	rows    [][]string
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	if format != FormatCSV && format != FormatExcel && format != FormatPDF {
		return nil, "", "", apperr.Validation("invalid format: %s (expected csv, excel or pdf)", format)
	}

	var t table
	switch reportType {
	case ReportTypeFarmers:
		t = farmersTable(data.Farmers)
	case ReportTypeLandlords:
		t = landlordsTable(data.Landlords)
	case ReportTypeSpaces:
		t = spacesTable(data.Spaces)
	default:
		return nil, "", "", apperr.Validation("invalid report type: %s (expected farmers, landlords or spaces)", reportType)
	}

	base := fmt.Sprintf("%s_report_%s", reportType, e.now().Format("20060102_150405"))
	switch format {
	case FormatCSV:
		b, err := t.csv()
		return b, base + ".csv", mimeCSV, err
	case FormatExcel:
		b, err := t.excel()
		return b, base + ".xlsx", mimeExcel, err
	default:
		b, err := t.pdf()
		return b, base + ".pdf", mimePDF, err
	}
}

func farmersTable(rows []FarmerReportRow) table {
	t := table{
		title:   "Farmers Report",
		headers: []string{"id", "user_id", "email", "phone_number", "land_handling_capacity", "preferred_locations", "created_at"},
		widths:  []float64{12, 16, 55, 30, 25, 80, 45},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []string{
			fmt.Sprint(r.ID),
			fmt.Sprint(r.UserID),
			r.Email,
			r.PhoneNumber,
			strconv.Itoa(r.LandHandlingCapacity),
			r.PreferredLocations,
			formatTime(r.CreatedAt),
		})
	}
	return t
}

func landlordsTable(rows []LandlordReportRow) table {
	t := table{
		title:   "Landlords Report",
		headers: []string{"id", "user_id", "email", "phone_number", "soil_type", "acres", "location", "created_at"},
		widths:  []float64{12, 16, 55, 30, 30, 18, 67, 45},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []string{
			fmt.Sprint(r.ID),
			fmt.Sprint(r.UserID),
			r.Email,
			r.PhoneNumber,
			r.SoilType,
			strconv.Itoa(r.Acres),
			r.Location,
			formatTime(r.CreatedAt),
		})
	}
	return t
}

func spacesTable(rows []SpaceReportRow) table {
	t := table{
		title:   "Spaces Report",
		headers: []string{"id", "farmer_email", "landlord_email", "admin_email", "location", "description", "crop_count", "created_at"},
		widths:  []float64{12, 45, 45, 45, 35, 55, 18, 38},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []string{
			fmt.Sprint(r.ID),
			r.FarmerEmail,
			r.LandlordEmail,
			r.AdminEmail,
			r.Location,
			r.Description,
			fmt.Sprint(r.CropCount),
			formatTime(r.CreatedAt),
		})
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func (t table) csv() ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(t.headers); err != nil {
		return nil, err
	}
	for _, r := range t.rows {
		if err := w.Write(r); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t table) excel() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.title
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range t.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}
	for rIdx, r := range t.rows {
		for cIdx, v := range r {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t table) pdf() ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, t.title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 8)
	for i, h := range t.headers {
		pdf.CellFormat(t.widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range t.rows {
		for i, v := range r {
			pdf.CellFormat(t.widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
