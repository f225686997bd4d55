package service

import (
	"context"

	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

// UserService resolves the user every task operation acts for.
type UserService struct {
	repo  *repository.UserRepository
	email string
	name  string
}

// NewUserService returns a service that bootstraps a default user with the
// given identity.
func NewUserService(repo *repository.UserRepository, email, name string) *UserService {
	return &UserService{repo: repo, email: email, name: name}
}

// Default returns the deployment's user, creating it on first use.
func (s *UserService) Default(ctx context.Context) (*model.User, error) {
	return s.repo.FirstOrCreate(ctx, s.email, s.name)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListAll(ctx)
}
