package tree

import (
	"time"

	"github.com/mlindner/asmtrack/internal/domain"
)

// Snapshot is one fully assembled procurement tree for a project,
// produced by a single fetch cycle. Snapshots are immutable once
// assembled: a resync replaces the whole snapshot, it never patches
// one in place.
//
// Every non-root branch carries its own Unavailable marker so a failed
// fetch of one list degrades just that branch instead of the cycle.
type Snapshot struct {
	Project    *domain.Project
	Managers   AssignmentList
	Operators  AssignmentList
	Assemblies AssemblyList
	FetchedAt  time.Time
	Cycle      uint64
}

// AssignmentList is one assignment branch (managers or operators).
type AssignmentList struct {
	Assignments []*domain.Assignment
	Unavailable bool
}

// AssemblyList is the project's assembly branch.
type AssemblyList struct {
	Nodes       []*AssemblyNode
	Unavailable bool
}

// AssemblyNode pairs an assembly with its fetched child branches.
type AssemblyNode struct {
	Assembly      *domain.Assembly
	Items         ItemList
	Subassemblies SubassemblyList
}

// SubassemblyList is one assembly's subassembly branch.
type SubassemblyList struct {
	Nodes       []*SubassemblyNode
	Unavailable bool
}

// SubassemblyNode pairs a subassembly with its item branch.
type SubassemblyNode struct {
	Subassembly *domain.Subassembly
	Items       ItemList
}

// ItemList is one item branch, owned by an assembly or a subassembly.
type ItemList struct {
	Items       []*domain.Item
	Unavailable bool
}

// FindItem returns the item with the given id anywhere in the
// snapshot, or nil.
func (s *Snapshot) FindItem(itemID string) *domain.Item {
	for _, a := range s.Assemblies.Nodes {
		for _, i := range a.Items.Items {
			if i.ID == itemID {
				return i
			}
		}
		for _, sub := range a.Subassemblies.Nodes {
			for _, i := range sub.Items.Items {
				if i.ID == itemID {
					return i
				}
			}
		}
	}
	return nil
}
