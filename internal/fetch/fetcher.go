package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/tree"
)

// ErrProjectNotFound is the terminal outcome of a fetch cycle whose
// root resolution failed or returned nothing. It is the only fetch
// error surfaced to the operator; every other failure degrades to an
// unavailable branch inside the snapshot.
var ErrProjectNotFound = errors.New("project not found")

// Fetcher assembles a project-rooted tree snapshot from independent
// source calls, one depth at a time:
//
//	1. resolve the project (terminal on failure)
//	2. managers ∥ operators ∥ assembly list
//	3. per assembly: item list ∥ subassembly list
//	4. per subassembly: item list
//
// Sibling branches at the same depth run concurrently; a depth only
// starts once its parent's depth has settled. Any non-root failure
// marks just that branch unavailable.
type Fetcher struct {
	src Source
	log *logrus.Logger
}

// NewFetcher creates a Fetcher over the given source. A nil logger
// disables debug logging.
func NewFetcher(src Source, log *logrus.Logger) *Fetcher {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Fetcher{src: src, log: log}
}

// Fetch runs one complete fetch cycle for the given project
// identification number and returns the assembled snapshot.
func (f *Fetcher) Fetch(ctx context.Context, number string) (*tree.Snapshot, error) {
	start := time.Now()

	project, err := f.src.ResolveProject(ctx, number)
	if err != nil {
		f.log.WithFields(logrus.Fields{"number": number, "err": err}).Debug("project resolution failed")
		return nil, fmt.Errorf("%w: %q: %v", ErrProjectNotFound, number, err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, number)
	}

	snap := &tree.Snapshot{Project: project}

	var assemblies []*domain.Assembly
	gather(
		func() {
			snap.Managers = f.assignmentBranch(ctx, number, "managers", project.ID, f.src.ListManagers)
		},
		func() {
			snap.Operators = f.assignmentBranch(ctx, number, "operators", project.ID, f.src.ListOperators)
		},
		func() {
			var err error
			assemblies, err = f.src.ListAssemblies(ctx, project.ID)
			if err != nil {
				f.branchFailed(number, "assemblies", err)
				snap.Assemblies.Unavailable = true
			}
		},
	)

	// Depth 3: every assembly's children, all assemblies in parallel.
	nodes := make([]*tree.AssemblyNode, len(assemblies))
	tasks := make([]func(), len(assemblies))
	for i, a := range assemblies {
		i, a := i, a
		tasks[i] = func() {
			nodes[i] = f.assemblyBranch(ctx, number, project.ID, a)
		}
	}
	gather(tasks...)
	snap.Assemblies.Nodes = nodes

	snap.FetchedAt = time.Now().UTC()
	f.log.WithFields(logrus.Fields{
		"number":     number,
		"assemblies": len(nodes),
		"duration":   time.Since(start),
	}).Debug("fetch cycle complete")
	return snap, nil
}

// assemblyBranch fetches one assembly's item list and subassembly list
// in parallel, then fans out over the discovered subassemblies. The
// subassembly item calls cannot start before this assembly's
// subassembly list has settled, but they do not wait for any other
// assembly.
func (f *Fetcher) assemblyBranch(ctx context.Context, number, projectID string, a *domain.Assembly) *tree.AssemblyNode {
	node := &tree.AssemblyNode{Assembly: a}

	var subs []*domain.Subassembly
	gather(
		func() {
			items, err := f.src.ListAssemblyItems(ctx, projectID, a.ID)
			if err != nil {
				f.branchFailed(number, "assembly "+a.Number+" items", err)
				node.Items.Unavailable = true
				return
			}
			node.Items.Items = items
		},
		func() {
			var err error
			subs, err = f.src.ListSubassemblies(ctx, a.ID)
			if err != nil {
				f.branchFailed(number, "assembly "+a.Number+" subassemblies", err)
				node.Subassemblies.Unavailable = true
			}
		},
	)

	subNodes := make([]*tree.SubassemblyNode, len(subs))
	tasks := make([]func(), len(subs))
	for i, sub := range subs {
		i, sub := i, sub
		tasks[i] = func() {
			subNodes[i] = f.subassemblyBranch(ctx, number, sub)
		}
	}
	gather(tasks...)
	node.Subassemblies.Nodes = subNodes

	return node
}

func (f *Fetcher) subassemblyBranch(ctx context.Context, number string, sub *domain.Subassembly) *tree.SubassemblyNode {
	node := &tree.SubassemblyNode{Subassembly: sub}
	items, err := f.src.ListSubassemblyItems(ctx, sub.ID)
	if err != nil {
		f.branchFailed(number, "subassembly "+sub.Number+" items", err)
		node.Items.Unavailable = true
		return node
	}
	node.Items.Items = items
	return node
}

func (f *Fetcher) assignmentBranch(ctx context.Context, number, branch, projectID string,
	list func(context.Context, string) ([]*domain.Assignment, error)) tree.AssignmentList {

	assignments, err := list(ctx, projectID)
	if err != nil {
		f.branchFailed(number, branch, err)
		return tree.AssignmentList{Unavailable: true}
	}
	return tree.AssignmentList{Assignments: assignments}
}

func (f *Fetcher) branchFailed(number, branch string, err error) {
	f.log.WithFields(logrus.Fields{
		"number": number,
		"branch": branch,
		"err":    err,
	}).Debug("branch unavailable")
}
