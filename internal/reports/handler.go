package reports

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auth"
)

type Handler struct {
	service ReportService
}

func NewHandler(svc ReportService) *Handler {
	return &Handler{service: svc}
}

// GetDashboard godoc
// @Summary Aggregate counters for the dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardStats
// @Security BearerAuth
// @Router /dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	stats, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export godoc
// @Summary Download farmers, landlords or spaces
// @Tags Admin
// @Produce octet-stream
// @Param type query string true "farmers|landlords|spaces"
// @Param format query string true "csv|excel|pdf"
// @Param date_range query string false "all|daily|weekly|monthly|yearly|custom"
// @Param start_date query string false "YYYY-MM-DD, custom range only"
// @Param end_date query string false "YYYY-MM-DD, custom range only"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/reports/export [get]
func (h *Handler) Export(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reportType := strings.ToLower(c.Query("type"))
	if reportType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type query param required: farmers|landlords|spaces"})
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", FormatCSV))
	dateRange := c.DefaultQuery("date_range", DateRangeAll)

	start, end, err := GetDateRange(dateRange, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bytes, fname, mime, err := h.service.Export(c.Request.Context(), actor, ExportRequest{
		Type:      reportType,
		Format:    format,
		DateRange: dateRange,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, bytes)
}
