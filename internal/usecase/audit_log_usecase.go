package usecase

import (
	"context"

	"hospital-records/internal/converter"
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/internal/policy"
	"hospital-records/pkg/apperror"

	"github.com/sirupsen/logrus"
)

type AuditLogUsecase interface {
	List(ctx context.Context) (*dto.AuditLogListResponse, error)
	Get(ctx context.Context, id int) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *memory.DB
	log          *logrus.Logger
	actors       *ActorResolver
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *memory.DB,
	log *logrus.Logger,
	actors *ActorResolver,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		actors:       actors,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context) (*dto.AuditLogListResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	if err := u.authorize(ctx, tx); err != nil {
		return nil, err
	}

	logs, err := u.auditLogRepo.FindAll(ctx, tx)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) Get(ctx context.Context, id int) (*dto.AuditLogResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	if err := u.authorize(ctx, tx); err != nil {
		return nil, err
	}

	auditLog, err := u.auditLogRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, apperror.NewNotFoundError("audit log", id)
	}

	return converter.AuditLogToResponse(auditLog), nil
}

func (u *auditLogUsecase) authorize(ctx context.Context, tx *memory.Tx) error {
	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return err
	}
	return policy.AuthorizeAdmin(actor, "audit log")
}
