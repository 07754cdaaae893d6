package tree

import (
	"github.com/shopspring/decimal"

	"github.com/mlindner/asmtrack/internal/domain"
)

// Progress calculations are pure functions over a snapshot. Nothing
// here is cached: callers always pass the current snapshot, and each
// call walks it in O(tree size).
//
// Zero items in scope yields 0, not 100 and not NaN. Unavailable
// branches contribute zero items to whatever scope contains them.

// ItemProgress returns 0 or 100 from the item's received flag.
func ItemProgress(i *domain.Item) float64 {
	if i.Received {
		return 100
	}
	return 0
}

// AssemblyProgress returns the assembly's completion percentage.
// The scope is the assembly's direct items; an assembly with no direct
// items descends into its subassemblies' items instead.
func AssemblyProgress(n *AssemblyNode) float64 {
	received, total := AssemblyCounts(n)
	return percentage(received, total)
}

// AssemblyCounts returns (received, total) for the assembly's progress
// scope: direct items when any exist, otherwise subassembly items.
func AssemblyCounts(n *AssemblyNode) (received, total int) {
	received, total = countItems(n.Items)
	if total > 0 {
		return received, total
	}
	return subassemblyCounts(n)
}

// SubassemblyProgress returns the completion percentage of one
// subassembly's item list.
func SubassemblyProgress(n *SubassemblyNode) float64 {
	received, total := countItems(n.Items)
	return percentage(received, total)
}

// ProjectProgress returns the project-wide completion percentage over
// every item under every assembly and subassembly.
func ProjectProgress(s *Snapshot) float64 {
	received, total := ProjectCounts(s)
	return percentage(received, total)
}

// ProjectCounts returns (received, total) across the whole snapshot.
// Unlike AssemblyCounts, the project scope always includes both direct
// and subassembly items of every assembly.
func ProjectCounts(s *Snapshot) (received, total int) {
	for _, n := range s.Assemblies.Nodes {
		r, t := countItems(n.Items)
		received += r
		total += t
		r, t = subassemblyCounts(n)
		received += r
		total += t
	}
	return received, total
}

// MaterialCost sums price × required quantity over every available
// item in the snapshot.
func MaterialCost(s *Snapshot) decimal.Decimal {
	cost := decimal.Zero
	for _, n := range s.Assemblies.Nodes {
		cost = cost.Add(AssemblyMaterialCost(n))
	}
	return cost
}

// AssemblyMaterialCost sums price × required quantity over the
// assembly's direct and subassembly items.
func AssemblyMaterialCost(n *AssemblyNode) decimal.Decimal {
	cost := itemCost(n.Items)
	for _, sub := range n.Subassemblies.Nodes {
		cost = cost.Add(itemCost(sub.Items))
	}
	return cost
}

func subassemblyCounts(n *AssemblyNode) (received, total int) {
	for _, sub := range n.Subassemblies.Nodes {
		r, t := countItems(sub.Items)
		received += r
		total += t
	}
	return received, total
}

func countItems(l ItemList) (received, total int) {
	// An unavailable list has no items, so it naturally contributes 0/0.
	for _, i := range l.Items {
		total++
		if i.Received {
			received++
		}
	}
	return received, total
}

func itemCost(l ItemList) decimal.Decimal {
	cost := decimal.Zero
	for _, i := range l.Items {
		cost = cost.Add(i.LineCost())
	}
	return cost
}

func percentage(received, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(received) / float64(total) * 100
}
