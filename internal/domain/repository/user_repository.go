package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"
)

type UserRepository interface {
	Create(ctx context.Context, tx *memory.Tx, user *entity.User) error
	FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.User, error)
	FindByUsername(ctx context.Context, tx *memory.Tx, username string) (*entity.User, error)
	FindAll(ctx context.Context, tx *memory.Tx) ([]entity.User, error)
	Update(ctx context.Context, tx *memory.Tx, user *entity.User) error
}
