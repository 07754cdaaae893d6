package service

import (
	"context"

	"github.com/mlindner/asmtrack/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByNumber(ctx context.Context, number string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type AssemblyService interface {
	Create(ctx context.Context, a *domain.Assembly) error
	GetByID(ctx context.Context, id string) (*domain.Assembly, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Assembly, error)
	Update(ctx context.Context, a *domain.Assembly) error
	Delete(ctx context.Context, id string) error
}

type SubassemblyService interface {
	Create(ctx context.Context, s *domain.Subassembly) error
	ListByAssembly(ctx context.Context, assemblyID string) ([]*domain.Subassembly, error)
	Delete(ctx context.Context, id string) error
}

type ItemService interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
	// Receive flips the received flag, stamping the arrival date with
	// the current time when turning true and clearing it otherwise.
	Receive(ctx context.Context, id string, received bool) error
	Delete(ctx context.Context, id string) error
}

type UserService interface {
	Create(ctx context.Context, u *domain.User) error
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Assign(ctx context.Context, projectID, userID string, role domain.AssignmentRole) (*domain.Assignment, error)
}

// SeedService populates a database with a demo project tree.
type SeedService interface {
	Seed(ctx context.Context) (*domain.Project, error)
}
