package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"
)

type LabReportRepository interface {
	Create(ctx context.Context, tx *memory.Tx, report *entity.LabReport) error
	FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.LabReport, error)
	FindAll(ctx context.Context, tx *memory.Tx, filter *entity.LabReportFilter) ([]entity.LabReport, error)
	FindByPatientID(ctx context.Context, tx *memory.Tx, patientID int, filter *entity.LabReportFilter) ([]entity.LabReport, error)
	Update(ctx context.Context, tx *memory.Tx, report *entity.LabReport) error
	Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error)
}
