package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"
)

type BillRepository interface {
	Create(ctx context.Context, tx *memory.Tx, bill *entity.Bill) error
	FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Bill, error)
	FindAll(ctx context.Context, tx *memory.Tx, filter *entity.BillFilter) ([]entity.Bill, error)
	FindByPatientID(ctx context.Context, tx *memory.Tx, patientID int, filter *entity.BillFilter) ([]entity.Bill, error)
	Update(ctx context.Context, tx *memory.Tx, bill *entity.Bill) error
	Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error)
}
