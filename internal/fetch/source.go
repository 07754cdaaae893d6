package fetch

import (
	"context"
	"time"

	"github.com/mlindner/asmtrack/internal/domain"
)

// Source is the boundary to the per-entity data endpoints the fetcher
// orchestrates. Each method is one independent call: the fetcher, not
// the source, decides what runs in parallel and which failures are
// contained. Implemented by repository.SourceAdapter in production.
type Source interface {
	// ResolveProject looks a project up by its identification number.
	ResolveProject(ctx context.Context, number string) (*domain.Project, error)

	ListManagers(ctx context.Context, projectID string) ([]*domain.Assignment, error)
	ListOperators(ctx context.Context, projectID string) ([]*domain.Assignment, error)
	ListAssemblies(ctx context.Context, projectID string) ([]*domain.Assembly, error)
	ListAssemblyItems(ctx context.Context, projectID, assemblyID string) ([]*domain.Item, error)
	ListSubassemblies(ctx context.Context, assemblyID string) ([]*domain.Subassembly, error)
	ListSubassemblyItems(ctx context.Context, subassemblyID string) ([]*domain.Item, error)

	// UpdateItemReceived is the single write endpoint: it sets the
	// received flag and arrival timestamp of one item.
	UpdateItemReceived(ctx context.Context, itemID string, received bool, arrivedAt *time.Time) error
}
