package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"gorm.io/gorm"
)

type Service interface {
	LogAction(ctx context.Context, entry Entry) error
	GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error)
	GetAuditLogByID(ctx context.Context, id uint) (*AuditLogResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction creates a new audit log entry. Failures to write the trail are
// logged and returned but callers treat them as non-fatal.
func (s *service) LogAction(ctx context.Context, entry Entry) error {
	if entry.Details == nil {
		entry.Details = make(map[string]interface{})
	}
	if entry.Status == "" {
		entry.Status = StatusSuccess
	}

	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	row := &AuditLog{
		UserID:     entry.UserID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Details:    detailsJSON,
		IPAddress:  entry.IP,
		Status:     entry.Status,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		log.Printf("⚠️ audit log %s not written: %v", entry.Action, err)
		return err
	}
	return nil
}

// GetAuditLogs retrieves paginated audit logs with filters
func (s *service) GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []AuditLogResponse{}
	}

	return &PaginatedAuditLogs{
		Data:       logs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetAuditLogByID retrieves a specific audit log by ID
func (s *service) GetAuditLogByID(ctx context.Context, id uint) (*AuditLogResponse, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Audit log not found")
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Ptr is a small helper for optional ids in entries.
func Ptr(id uint) *uint { return &id }
