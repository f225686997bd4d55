package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"daily-tasks/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FirstOrCreate returns the oldest user, creating one with the given identity
// when the table is empty.
func (r *UserRepository) FirstOrCreate(ctx context.Context, email, name string) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Order("id ASC").Take(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{Email: email, Name: name}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user together with all owned tasks and their history.
// The cascade is spelled out so it also holds on databases without
// foreign key enforcement.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&model.Task{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.TaskHistory{}).Error; err != nil {
			return fmt.Errorf("delete user history: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete user tasks: %w", err)
		}
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
