package dto

import (
	"hospital-records/internal/domain/entity"
	"time"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int         `json:"id"`
	UserID    *int        `json:"user_id"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
