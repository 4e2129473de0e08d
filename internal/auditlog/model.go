package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// Audit statuses
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uint          `gorm:"index" json:"user_id"` // nullable (e.g. failed login)
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	TargetType string         `gorm:"size:50;index" json:"target_type,omitempty"`
	TargetID   *uint          `gorm:"index" json:"target_id,omitempty"`
	Details    datatypes.JSON `json:"details"`
	IPAddress  string         `gorm:"size:45" json:"ip_address"`
	Status     string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Entry is what services hand to LogAction.
type Entry struct {
	UserID     *uint
	Action     string
	TargetType string
	TargetID   *uint
	Details    map[string]interface{}
	IP         string
	Status     string
}

// AuditLogResponse represents the audit log response for API
type AuditLogResponse struct {
	ID         uint           `json:"id"`
	UserID     *uint          `json:"user_id"`
	Action     string         `json:"action"`
	TargetType string         `json:"target_type,omitempty"`
	TargetID   *uint          `json:"target_id,omitempty"`
	Details    datatypes.JSON `json:"details"`
	IPAddress  string         `json:"ip_address"`
	Status     string         `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UserEmail  *string        `json:"user_email,omitempty"`
}

// AuditLogFilter represents filters for querying audit logs
type AuditLogFilter struct {
	UserID     *uint      `json:"user_id"`
	Action     string     `json:"action"`
	Status     string     `json:"status"`
	TargetType string     `json:"target_type"` // space, crop, farmer, ...
	TargetID   *uint      `json:"target_id"`
	FromDate   *time.Time `json:"from_date"`
	ToDate     *time.Time `json:"to_date"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

// PaginatedAuditLogs represents paginated audit log response
type PaginatedAuditLogs struct {
	Data       []AuditLogResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
