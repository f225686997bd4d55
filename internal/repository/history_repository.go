package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"daily-tasks/internal/model"
)

// HistoryRepository handles the task history ledger.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *model.TaskHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append task history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) Save(ctx context.Context, entry *model.TaskHistory) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("save task history: %w", err)
	}
	return nil
}

// Current returns the episode row for the task's present due date: the most
// recently inserted row with that due date. It returns nil, nil when no such
// row exists.
func (r *HistoryRepository) Current(ctx context.Context, taskID uint, due datatypes.Date) (*model.TaskHistory, error) {
	var entry model.TaskHistory
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND due_date = ?", taskID, due).
		Order("id DESC").
		Take(&entry).Error
	switch {
	case err == nil:
		return &entry, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find current task history: %w", err)
	}
}

func (r *HistoryRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskHistory, error) {
	var entries []model.TaskHistory
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepository) CountByTask(ctx context.Context, taskID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.TaskHistory{}).Where("task_id = ?", taskID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *HistoryRepository) DeleteByTask(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&model.TaskHistory{}).Error; err != nil {
		return fmt.Errorf("delete task history: %w", err)
	}
	return nil
}
