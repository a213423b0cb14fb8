package repository

import (
	"context"
	"time"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, tx *memory.Tx, user *entity.User) error {
	now := time.Now()
	user.ID = tx.NextID(usersTable)
	user.CreatedAt = now
	user.UpdatedAt = now
	return tx.Insert(usersTable, user.ID, *user)
}

func (r *userRepository) FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.User, error) {
	user, ok := memory.Find[entity.User](tx, usersTable, id)
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// FindByUsername matches the username exactly; usernames are case-sensitive.
func (r *userRepository) FindByUsername(ctx context.Context, tx *memory.Tx, username string) (*entity.User, error) {
	users := memory.Scan(tx, usersTable, func(u entity.User) bool {
		return u.Username == username
	})
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *userRepository) FindAll(ctx context.Context, tx *memory.Tx) ([]entity.User, error) {
	return memory.Scan[entity.User](tx, usersTable, nil), nil
}

func (r *userRepository) Update(ctx context.Context, tx *memory.Tx, user *entity.User) error {
	user.UpdatedAt = time.Now()
	return tx.Put(usersTable, user.ID, *user)
}
