package reports

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardCacheKey = "reports:dashboard"
	DashboardCacheTTL = 30 * time.Second
)

// ReportService builds the dashboard and coordinates repo + exporter.
type ReportService interface {
	GetDashboard(ctx context.Context) (DashboardStats, error)
	Export(ctx context.Context, actor auth.Actor, req ExportRequest) ([]byte, string, string, error)
}

type reportService struct {
	repo     ReportRepository
	exporter ReportExporter
	auditSvc auditlog.Service
	rdb      *redis.Client
}

// NewReportService wires the service. rdb may be nil, in which case the
// dashboard is computed on every call.
func NewReportService(repo ReportRepository, exporter ReportExporter, auditSvc auditlog.Service, rdb *redis.Client) ReportService {
	return &reportService{
		repo:     repo,
		exporter: exporter,
		auditSvc: auditSvc,
		rdb:      rdb,
	}
}

func (s *reportService) GetDashboard(ctx context.Context) (DashboardStats, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes()
		if err == nil {
			var cached DashboardStats
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ dashboard cache read failed: %v", err)
		}
	}

	stats, err := s.repo.GetDashboardStats(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	if s.rdb != nil {
		payload, _ := json.Marshal(stats)
		if err := s.rdb.Set(ctx, dashboardCacheKey, payload, DashboardCacheTTL).Err(); err != nil {
			log.Printf("⚠️ dashboard cache write failed: %v", err)
		}
	}
	return stats, nil
}

func (s *reportService) load(ctx context.Context, req ExportRequest) (ReportData, int, error) {
	var data ReportData
	var err error
	switch req.Type {
	case ReportTypeFarmers:
		data.Farmers, err = s.repo.GetFarmers(ctx, req)
		return data, len(data.Farmers), err
	case ReportTypeLandlords:
		data.Landlords, err = s.repo.GetLandlords(ctx, req)
		return data, len(data.Landlords), err
	case ReportTypeSpaces:
		data.Spaces, err = s.repo.GetSpaces(ctx, req)
		return data, len(data.Spaces), err
	}
	return data, 0, apperr.Validation("invalid report type: %s (expected farmers, landlords or spaces)", req.Type)
}

func (s *reportService) Export(ctx context.Context, actor auth.Actor, req ExportRequest) ([]byte, string, string, error) {
	if !actor.IsAdmin() {
		return nil, "", "", apperr.Forbidden("Only admins can export reports")
	}

	data, count, err := s.load(ctx, req)
	if err != nil {
		s.logFailure(ctx, actor, req, err)
		return nil, "", "", err
	}

	bytes, filename, mimeType, err := s.exporter.Export(req.Type, req.Format, data)
	if err != nil {
		s.logFailure(ctx, actor, req, err)
		return nil, "", "", err
	}

	s.log(ctx, actor, "REPORT_DOWNLOADED", auditlog.StatusSuccess, map[string]interface{}{
		"report_type":  req.Type,
		"format":       req.Format,
		"filename":     filename,
		"date_range":   req.DateRange,
		"record_count": count,
	})
	return bytes, filename, mimeType, nil
}

func (s *reportService) logFailure(ctx context.Context, actor auth.Actor, req ExportRequest, err error) {
	s.log(ctx, actor, "REPORT_DOWNLOAD_FAILED", auditlog.StatusFailure, map[string]interface{}{
		"report_type": req.Type,
		"format":      req.Format,
		"error":       err.Error(),
	})
}

func (s *reportService) log(ctx context.Context, actor auth.Actor, action, status string, details map[string]interface{}) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(ctx, auditlog.Entry{
		UserID:     auditlog.Ptr(actor.UserID),
		Action:     action,
		TargetType: "report",
		Details:    details,
		IP:         actor.IP,
		Status:     status,
	})
}
