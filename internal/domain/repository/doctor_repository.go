package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"
)

type DoctorRepository interface {
	Create(ctx context.Context, tx *memory.Tx, doctor *entity.Doctor) error
	FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Doctor, error)
	FindByUserID(ctx context.Context, tx *memory.Tx, userID int) (*entity.Doctor, error)
	FindAll(ctx context.Context, tx *memory.Tx, filter *entity.DoctorFilter) ([]entity.Doctor, error)
	Update(ctx context.Context, tx *memory.Tx, doctor *entity.Doctor) error
	Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error)
}
