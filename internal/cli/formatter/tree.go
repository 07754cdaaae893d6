package formatter

import (
	"fmt"
	"strings"

	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/tree"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderSnapshot renders a full procurement tree for the headless
// status command: project header with progress and material cost,
// assignment lines, then every assembly with its items and
// subassemblies. Unavailable branches render a dimmed placeholder
// instead of children.
func RenderSnapshot(s *tree.Snapshot) string {
	var b strings.Builder

	p := s.Project
	b.WriteString(Header(fmt.Sprintf("%s  %s", p.Number, p.Description)))
	b.WriteString("\n")

	rec, total := tree.ProjectCounts(s)
	b.WriteString(fmt.Sprintf("%s  %s\n", RenderProgress(tree.ProjectProgress(s), 20), RenderCounts(rec, total)))
	b.WriteString(fmt.Sprintf("Material cost: %s\n", Money(tree.MaterialCost(s))))
	if p.DeliveryDate != nil {
		b.WriteString(fmt.Sprintf("Delivery: %s\n", HumanDate(*p.DeliveryDate)))
	}
	b.WriteString(renderAssignments("Managers", s.Managers))
	b.WriteString(renderAssignments("Operators", s.Operators))
	b.WriteString("\n")

	if s.Assemblies.Unavailable {
		b.WriteString(Dim("assemblies unavailable") + "\n")
		return b.String()
	}
	for ai, node := range s.Assemblies.Nodes {
		lastAssembly := ai == len(s.Assemblies.Nodes)-1
		b.WriteString(renderAssembly(node, lastAssembly))
	}
	return b.String()
}

func renderAssignments(label string, l tree.AssignmentList) string {
	if l.Unavailable {
		return fmt.Sprintf("%s: %s\n", label, Dim("unavailable"))
	}
	if len(l.Assignments) == 0 {
		return fmt.Sprintf("%s: %s\n", label, Dim("none"))
	}
	names := make([]string, len(l.Assignments))
	for i, a := range l.Assignments {
		names[i] = a.UserName
	}
	return fmt.Sprintf("%s: %s\n", label, strings.Join(names, ", "))
}

func renderAssembly(node *tree.AssemblyNode, last bool) string {
	var b strings.Builder

	conn := treeBranch
	childIndent := treePipe
	if last {
		conn = treeCorner
		childIndent = treeBlank
	}

	rec, total := tree.AssemblyCounts(node)
	b.WriteString(fmt.Sprintf("%s%s  %s %s\n",
		conn,
		Bold(node.Assembly.Number),
		RenderProgress(tree.AssemblyProgress(node), 10),
		RenderCounts(rec, total)))

	children := assemblyChildren(node)
	for ci, child := range children {
		lastChild := ci == len(children)-1
		b.WriteString(child.render(childIndent, lastChild))
	}
	return b.String()
}

// childLine is one renderable child of an assembly: an item, a
// subassembly, or an unavailable marker.
type childLine struct {
	item *domain.Item
	sub  *tree.SubassemblyNode
	note string
}

func assemblyChildren(node *tree.AssemblyNode) []childLine {
	var children []childLine
	if node.Items.Unavailable {
		children = append(children, childLine{note: "items unavailable"})
	} else {
		for _, i := range node.Items.Items {
			children = append(children, childLine{item: i})
		}
	}
	if node.Subassemblies.Unavailable {
		children = append(children, childLine{note: "subassemblies unavailable"})
	} else {
		for _, s := range node.Subassemblies.Nodes {
			children = append(children, childLine{sub: s})
		}
	}
	return children
}

func (c childLine) render(indent string, last bool) string {
	conn := treeBranch
	childIndent := indent + treePipe
	if last {
		conn = treeCorner
		childIndent = indent + treeBlank
	}

	switch {
	case c.note != "":
		return indent + conn + Dim(c.note) + "\n"
	case c.item != nil:
		return indent + conn + renderItemLine(c.item) + "\n"
	default:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s%s%s  %s\n",
			indent, conn,
			Bold(c.sub.Subassembly.Number),
			RenderProgress(tree.SubassemblyProgress(c.sub), 10)))
		if c.sub.Items.Unavailable {
			b.WriteString(childIndent + treeCorner + Dim("items unavailable") + "\n")
			return b.String()
		}
		for i, item := range c.sub.Items.Items {
			ic := treeBranch
			if i == len(c.sub.Items.Items)-1 {
				ic = treeCorner
			}
			b.WriteString(childIndent + ic + renderItemLine(item) + "\n")
		}
		return b.String()
	}
}

func renderItemLine(i *domain.Item) string {
	name := i.Name
	if i.Received {
		name = Dim(name)
	}
	line := fmt.Sprintf("%s %s", Checkbox(i.Received), name)
	if i.Supplier != "" {
		line += "  " + StyleBlue.Render(i.Supplier)
	}
	if i.Received && i.ArrivedDate != nil {
		line += "  " + Dim(HumanDate(*i.ArrivedDate))
	}
	return line
}
