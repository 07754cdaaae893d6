package repository

import (
	"context"
	"time"

	"github.com/mlindner/asmtrack/internal/domain"
)

// SourceAdapter bundles the per-entity repositories into the read/write
// endpoint set the tree fetcher consumes (fetch.Source). Each method is
// one independent call; the fetcher decides how to parallelize and how
// to contain failures.
type SourceAdapter struct {
	projects      ProjectRepo
	assemblies    AssemblyRepo
	subassemblies SubassemblyRepo
	items         ItemRepo
	assignments   AssignmentRepo
}

// NewSourceAdapter creates a SourceAdapter over the given repositories.
func NewSourceAdapter(projects ProjectRepo, assemblies AssemblyRepo, subassemblies SubassemblyRepo, items ItemRepo, assignments AssignmentRepo) *SourceAdapter {
	return &SourceAdapter{
		projects:      projects,
		assemblies:    assemblies,
		subassemblies: subassemblies,
		items:         items,
		assignments:   assignments,
	}
}

func (s *SourceAdapter) ResolveProject(ctx context.Context, number string) (*domain.Project, error) {
	return s.projects.GetByNumber(ctx, number)
}

func (s *SourceAdapter) ListManagers(ctx context.Context, projectID string) ([]*domain.Assignment, error) {
	return s.assignments.ListByProjectAndRole(ctx, projectID, domain.RoleManager)
}

func (s *SourceAdapter) ListOperators(ctx context.Context, projectID string) ([]*domain.Assignment, error) {
	return s.assignments.ListByProjectAndRole(ctx, projectID, domain.RoleOperator)
}

func (s *SourceAdapter) ListAssemblies(ctx context.Context, projectID string) ([]*domain.Assembly, error) {
	return s.assemblies.ListByProject(ctx, projectID)
}

func (s *SourceAdapter) ListAssemblyItems(ctx context.Context, projectID, assemblyID string) ([]*domain.Item, error) {
	return s.items.ListByProjectAndAssembly(ctx, projectID, assemblyID)
}

func (s *SourceAdapter) ListSubassemblies(ctx context.Context, assemblyID string) ([]*domain.Subassembly, error) {
	return s.subassemblies.ListByAssembly(ctx, assemblyID)
}

func (s *SourceAdapter) ListSubassemblyItems(ctx context.Context, subassemblyID string) ([]*domain.Item, error) {
	return s.items.ListBySubassembly(ctx, subassemblyID)
}

func (s *SourceAdapter) UpdateItemReceived(ctx context.Context, itemID string, received bool, arrivedAt *time.Time) error {
	return s.items.SetReceived(ctx, itemID, received, arrivedAt)
}
