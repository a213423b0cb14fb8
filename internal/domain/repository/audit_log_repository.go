package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"
)

type AuditLogRepository interface {
	Create(ctx context.Context, tx *memory.Tx, log *entity.AuditLog) error
	FindAll(ctx context.Context, tx *memory.Tx) ([]entity.AuditLog, error)
	FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.AuditLog, error)
}
