package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/repository"
)

type assemblyService struct {
	assemblies repository.AssemblyRepo
}

func NewAssemblyService(assemblies repository.AssemblyRepo) AssemblyService {
	return &assemblyService{assemblies: assemblies}
}

func (s *assemblyService) Create(ctx context.Context, a *domain.Assembly) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.assemblies.Create(ctx, a)
}

func (s *assemblyService) GetByID(ctx context.Context, id string) (*domain.Assembly, error) {
	return s.assemblies.GetByID(ctx, id)
}

func (s *assemblyService) ListByProject(ctx context.Context, projectID string) ([]*domain.Assembly, error) {
	return s.assemblies.ListByProject(ctx, projectID)
}

func (s *assemblyService) Update(ctx context.Context, a *domain.Assembly) error {
	a.UpdatedAt = time.Now().UTC()
	return s.assemblies.Update(ctx, a)
}

func (s *assemblyService) Delete(ctx context.Context, id string) error {
	return s.assemblies.Delete(ctx, id)
}

type subassemblyService struct {
	subassemblies repository.SubassemblyRepo
}

func NewSubassemblyService(subassemblies repository.SubassemblyRepo) SubassemblyService {
	return &subassemblyService{subassemblies: subassemblies}
}

func (s *subassemblyService) Create(ctx context.Context, sub *domain.Subassembly) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	return s.subassemblies.Create(ctx, sub)
}

func (s *subassemblyService) ListByAssembly(ctx context.Context, assemblyID string) ([]*domain.Subassembly, error) {
	return s.subassemblies.ListByAssembly(ctx, assemblyID)
}

func (s *subassemblyService) Delete(ctx context.Context, id string) error {
	return s.subassemblies.Delete(ctx, id)
}
