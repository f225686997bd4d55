package repository

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daily-tasks/internal/model"
)

// TaskRepository handles CRUD for tasks. Lookups are always scoped by the
// owning user, so a task of another user reads as gorm.ErrRecordNotFound.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Save writes every column of task and refreshes UpdatedAt.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindWithHistory loads the task and its history, oldest episode first.
func (r *TaskRepository) FindWithHistory(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ? AND id = ?", userID, taskID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the user's tasks, restricted to one due date when due is set.
func (r *TaskRepository) List(ctx context.Context, userID uint, due *datatypes.Date) ([]model.Task, error) {
	var tasks []model.Task
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if due != nil {
		q = q.Where("due_date = ?", *due)
	}
	if err := q.Order("due_date ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListDueOn(ctx context.Context, userID uint, due datatypes.Date, completed bool) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_date = ? AND completed = ?", userID, due, completed).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOverdue returns open tasks whose due date is before the given day.
func (r *TaskRepository) ListOverdue(ctx context.Context, userID uint, before datatypes.Date) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_date < ? AND completed = ?", userID, before, false).
		Order("due_date ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Delete removes a single task row. History rows must be removed first, see
// HistoryRepository.DeleteByTask.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, taskID).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
