package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/repository"
)

type itemService struct {
	items repository.ItemRepo
}

func NewItemService(items repository.ItemRepo) ItemService {
	return &itemService{items: items}
}

func (s *itemService) Create(ctx context.Context, i *domain.Item) error {
	if err := i.ValidateOwner(); err != nil {
		return err
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now
	return s.items.Create(ctx, i)
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) Update(ctx context.Context, i *domain.Item) error {
	i.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, i)
}

func (s *itemService) Receive(ctx context.Context, id string, received bool) error {
	var arrivedAt *time.Time
	if received {
		now := time.Now().UTC()
		arrivedAt = &now
	}
	return s.items.SetReceived(ctx, id, received, arrivedAt)
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
