package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories that share one connection or transaction.
type Store struct {
	db      *gorm.DB
	Users   *UserRepository
	Tasks   *TaskRepository
	History *HistoryRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:      db,
		Users:   NewUserRepository(db),
		Tasks:   NewTaskRepository(db),
		History: NewHistoryRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
