package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"
)

type PatientRepository interface {
	Create(ctx context.Context, tx *memory.Tx, patient *entity.Patient) error
	FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Patient, error)
	FindByUserID(ctx context.Context, tx *memory.Tx, userID int) (*entity.Patient, error)
	FindAll(ctx context.Context, tx *memory.Tx, filter *entity.PatientFilter) ([]entity.Patient, error)
	Update(ctx context.Context, tx *memory.Tx, patient *entity.Patient) error
	Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error)
}
