package tree

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mlindner/asmtrack/internal/domain"
)

func items(received ...bool) ItemList {
	var l ItemList
	for i, r := range received {
		l.Items = append(l.Items, &domain.Item{ID: string(rune('a' + i)), Received: r})
	}
	return l
}

func TestItemProgress(t *testing.T) {
	assert.Equal(t, float64(100), ItemProgress(&domain.Item{Received: true}))
	assert.Equal(t, float64(0), ItemProgress(&domain.Item{Received: false}))
}

func TestAssemblyProgress_DirectItems(t *testing.T) {
	// 4 items, 1 received → 25.
	n := &AssemblyNode{Assembly: &domain.Assembly{}, Items: items(true, false, false, false)}
	assert.Equal(t, float64(25), AssemblyProgress(n))
}

func TestAssemblyProgress_DescendsIntoSubassemblies(t *testing.T) {
	// No direct items, subassembly with 2 items both received → 100.
	n := &AssemblyNode{
		Assembly: &domain.Assembly{},
		Subassemblies: SubassemblyList{Nodes: []*SubassemblyNode{
			{Subassembly: &domain.Subassembly{}, Items: items(true, true)},
		}},
	}
	assert.Equal(t, float64(100), AssemblyProgress(n))
}

func TestAssemblyProgress_DirectItemsShadowSubassemblies(t *testing.T) {
	// Direct items exist, so the assembly scope ignores subassembly items.
	n := &AssemblyNode{
		Assembly: &domain.Assembly{},
		Items:    items(false, false),
		Subassemblies: SubassemblyList{Nodes: []*SubassemblyNode{
			{Subassembly: &domain.Subassembly{}, Items: items(true, true)},
		}},
	}
	assert.Equal(t, float64(0), AssemblyProgress(n))
}

func TestAssemblyProgress_ZeroItemsIsZero(t *testing.T) {
	n := &AssemblyNode{Assembly: &domain.Assembly{}}
	assert.Equal(t, float64(0), AssemblyProgress(n))

	unavailable := &AssemblyNode{
		Assembly:      &domain.Assembly{},
		Items:         ItemList{Unavailable: true},
		Subassemblies: SubassemblyList{Unavailable: true},
	}
	assert.Equal(t, float64(0), AssemblyProgress(unavailable))
}

func TestProjectProgress_MixedAssemblyScopes(t *testing.T) {
	// Assembly 1: 4 direct items, 1 received (25).
	// Assembly 2: no direct items, subassembly with 2 items, both received (100).
	// Project: (1+2)/(4+2) = 50.
	s := &Snapshot{
		Project: &domain.Project{},
		Assemblies: AssemblyList{Nodes: []*AssemblyNode{
			{Assembly: &domain.Assembly{}, Items: items(true, false, false, false)},
			{
				Assembly: &domain.Assembly{},
				Subassemblies: SubassemblyList{Nodes: []*SubassemblyNode{
					{Subassembly: &domain.Subassembly{}, Items: items(true, true)},
				}},
			},
		}},
	}
	assert.Equal(t, float64(25), AssemblyProgress(s.Assemblies.Nodes[0]))
	assert.Equal(t, float64(100), AssemblyProgress(s.Assemblies.Nodes[1]))
	assert.Equal(t, float64(50), ProjectProgress(s))
}

func TestProjectProgress_AgreesWithDirectComputation(t *testing.T) {
	// Project progress must equal total received / total items computed over
	// the flat item set, not an average of assembly percentages.
	s := &Snapshot{
		Project: &domain.Project{},
		Assemblies: AssemblyList{Nodes: []*AssemblyNode{
			{Assembly: &domain.Assembly{}, Items: items(true)},                             // 1/1
			{Assembly: &domain.Assembly{}, Items: items(false, false, false, false, true)}, // 1/5
		}},
	}
	// Average of percentages would be (100+20)/2 = 60; the correct value is 2/6.
	received, total := ProjectCounts(s)
	assert.Equal(t, 2, received)
	assert.Equal(t, 6, total)
	assert.InDelta(t, 100.0*2/6, ProjectProgress(s), 1e-9)
}

func TestProjectProgress_UnavailableBranchKeepsSiblingsIntact(t *testing.T) {
	healthy := &AssemblyNode{Assembly: &domain.Assembly{}, Items: items(true, false)}
	broken := &AssemblyNode{Assembly: &domain.Assembly{}, Items: ItemList{Unavailable: true}}
	s := &Snapshot{
		Project:    &domain.Project{},
		Assemblies: AssemblyList{Nodes: []*AssemblyNode{healthy, broken}},
	}

	// The broken assembly reads 0, not an error, and the healthy sibling
	// is unaffected. Project denominator only counts known items.
	assert.Equal(t, float64(50), AssemblyProgress(healthy))
	assert.Equal(t, float64(0), AssemblyProgress(broken))
	assert.Equal(t, float64(50), ProjectProgress(s))
}

func TestMaterialCost(t *testing.T) {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	s := &Snapshot{
		Project: &domain.Project{},
		Assemblies: AssemblyList{Nodes: []*AssemblyNode{
			{
				Assembly: &domain.Assembly{},
				Items: ItemList{Items: []*domain.Item{
					{Price: price("10.50"), QtyRequired: 2},
				}},
				Subassemblies: SubassemblyList{Nodes: []*SubassemblyNode{
					{Subassembly: &domain.Subassembly{}, Items: ItemList{Items: []*domain.Item{
						{Price: price("3.25"), QtyRequired: 4},
					}}},
				}},
			},
		}},
	}
	assert.True(t, MaterialCost(s).Equal(price("34")), MaterialCost(s).String())
}

func TestSnapshot_FindItem(t *testing.T) {
	direct := &domain.Item{ID: "direct"}
	nested := &domain.Item{ID: "nested"}
	s := &Snapshot{
		Assemblies: AssemblyList{Nodes: []*AssemblyNode{
			{
				Assembly: &domain.Assembly{},
				Items:    ItemList{Items: []*domain.Item{direct}},
				Subassemblies: SubassemblyList{Nodes: []*SubassemblyNode{
					{Subassembly: &domain.Subassembly{}, Items: ItemList{Items: []*domain.Item{nested}}},
				}},
			},
		}},
	}
	assert.Same(t, direct, s.FindItem("direct"))
	assert.Same(t, nested, s.FindItem("nested"))
	assert.Nil(t, s.FindItem("missing"))
}
