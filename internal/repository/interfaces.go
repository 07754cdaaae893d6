package repository

import (
	"context"
	"time"

	"github.com/mlindner/asmtrack/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByNumber(ctx context.Context, number string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type AssemblyRepo interface {
	Create(ctx context.Context, a *domain.Assembly) error
	GetByID(ctx context.Context, id string) (*domain.Assembly, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Assembly, error)
	Update(ctx context.Context, a *domain.Assembly) error
	Delete(ctx context.Context, id string) error
}

type SubassemblyRepo interface {
	Create(ctx context.Context, s *domain.Subassembly) error
	GetByID(ctx context.Context, id string) (*domain.Subassembly, error)
	ListByAssembly(ctx context.Context, assemblyID string) ([]*domain.Subassembly, error)
	Update(ctx context.Context, s *domain.Subassembly) error
	Delete(ctx context.Context, id string) error
}

type ItemRepo interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	ListByAssembly(ctx context.Context, assemblyID string) ([]*domain.Item, error)
	// ListByProjectAndAssembly is the progress-scoped variant: it
	// verifies the assembly belongs to the project before listing.
	ListByProjectAndAssembly(ctx context.Context, projectID, assemblyID string) ([]*domain.Item, error)
	ListBySubassembly(ctx context.Context, subassemblyID string) ([]*domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
	// SetReceived updates only the received flag and arrival timestamp.
	SetReceived(ctx context.Context, id string, received bool, arrivedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	ListByProjectAndRole(ctx context.Context, projectID string, role domain.AssignmentRole) ([]*domain.Assignment, error)
	Delete(ctx context.Context, id string) error
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
