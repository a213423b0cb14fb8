package repository

import (
	"context"
	"maps"
	"time"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, tx *memory.Tx, log *entity.AuditLog) error {
	log.ID = tx.NextID(auditLogsTable)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	stored := *log
	stored.Metadata = maps.Clone(log.Metadata)
	return tx.Insert(auditLogsTable, stored.ID, stored)
}

func (r *auditLogRepository) FindAll(ctx context.Context, tx *memory.Tx) ([]entity.AuditLog, error) {
	logs := memory.Scan[entity.AuditLog](tx, auditLogsTable, nil)
	for i := range logs {
		logs[i].Metadata = maps.Clone(logs[i].Metadata)
	}
	return logs, nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.AuditLog, error) {
	log, ok := memory.Find[entity.AuditLog](tx, auditLogsTable, id)
	if !ok {
		return nil, nil
	}
	log.Metadata = maps.Clone(log.Metadata)
	return &log, nil
}
