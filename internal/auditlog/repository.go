package auditlog

import (
	"context"
	"strings"

	"github.com/krishiconnect/krishi-backend/utils"
	"gorm.io/gorm"
)

const defaultPageSize = 20

type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	GetByFilter(ctx context.Context, filter AuditLogFilter) ([]AuditLogResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*AuditLogResponse, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// withActor joins the acting user's email onto audit rows.
func (r *repository) withActor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("audit_logs al").
		Joins("LEFT JOIN users u ON u.id = al.user_id")
}

func scoped(filter AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			q = q.Where("al.user_id = ?", *filter.UserID)
		}
		if filter.Action != "" {
			// case-insensitive on postgres and sqlite alike
			q = q.Where(`LOWER(al.action) LIKE ? ESCAPE '\'`, utils.ContainsPattern(strings.ToLower(filter.Action)))
		}
		if filter.Status != "" {
			q = q.Where("al.status = ?", filter.Status)
		}
		if filter.TargetType != "" {
			q = q.Where("al.target_type = ?", strings.ToLower(filter.TargetType))
		}
		if filter.TargetID != nil {
			q = q.Where("al.target_id = ?", *filter.TargetID)
		}
		if filter.FromDate != nil {
			q = q.Where("al.created_at >= ?", *filter.FromDate)
		}
		if filter.ToDate != nil {
			q = q.Where("al.created_at <= ?", *filter.ToDate)
		}
		return q
	}
}

func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// GetByFilter returns one page of matching entries, newest first, and the
// total number of matches.
func (r *repository) GetByFilter(ctx context.Context, filter AuditLogFilter) ([]AuditLogResponse, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	var total int64
	if err := r.withActor(ctx).Scopes(scoped(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []AuditLogResponse{}
	if total == 0 {
		return logs, 0, nil
	}

	err := r.withActor(ctx).
		Scopes(scoped(filter)).
		Select("al.*, u.email AS user_email").
		Order("al.created_at DESC").
		Order("al.id DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Scan(&logs).Error
	return logs, total, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*AuditLogResponse, error) {
	var out AuditLogResponse
	res := r.withActor(ctx).
		Select("al.*, u.email AS user_email").
		Where("al.id = ?", id).
		Limit(1).
		Scan(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &out, nil
}
