package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"
)

type MedicineRepository interface {
	Create(ctx context.Context, tx *memory.Tx, medicine *entity.Medicine) error
	FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Medicine, error)
	FindAll(ctx context.Context, tx *memory.Tx, filter *entity.MedicineFilter) ([]entity.Medicine, error)
	Update(ctx context.Context, tx *memory.Tx, medicine *entity.Medicine) error
	Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error)
}
