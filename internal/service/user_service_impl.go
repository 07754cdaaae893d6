package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/repository"
)

type userService struct {
	users       repository.UserRepo
	assignments repository.AssignmentRepo
}

func NewUserService(users repository.UserRepo, assignments repository.AssignmentRepo) UserService {
	return &userService{users: users, assignments: assignments}
}

func (s *userService) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.users.Create(ctx, u)
}

func (s *userService) GetByName(ctx context.Context, name string) (*domain.User, error) {
	return s.users.GetByName(ctx, name)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Assign(ctx context.Context, projectID, userID string, role domain.AssignmentRole) (*domain.Assignment, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	a := &domain.Assignment{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
