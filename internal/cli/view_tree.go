package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlindner/asmtrack/internal/cli/formatter"
	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/expand"
	"github.com/mlindner/asmtrack/internal/fetch"
	"github.com/mlindner/asmtrack/internal/mutation"
	"github.com/mlindner/asmtrack/internal/tree"
)

// snapshotMsg carries one committed fetch cycle from the scheduler.
type snapshotMsg struct {
	res fetch.Result
}

// schedClosedMsg signals the scheduler's results channel was closed.
type schedClosedMsg struct{}

// toggleDecisionMsg carries the confirmation wizard's answer for a
// pending item toggle.
type toggleDecisionMsg struct {
	itemID    string
	confirmed bool
}

// toggleOutcomeMsg carries the terminal result of a committed toggle.
type toggleOutcomeMsg struct {
	out mutation.Outcome
}

type rowKind int

const (
	rowAssembly rowKind = iota
	rowSubassembly
	rowItem
	rowDetail
	rowNote
)

// treeRow is one visible line of the flattened tree. The flattening
// is recomputed whenever the snapshot or the expansion state changes.
type treeRow struct {
	kind  rowKind
	depth int

	assembly *tree.AssemblyNode
	sub      *tree.SubassemblyNode
	item     *domain.Item
	text     string // detail or note content
}

// treeView is the interactive procurement tree for one project. All
// reads go through the scheduler so typed identifier changes debounce
// and stale cycles never clobber newer ones.
type treeView struct {
	state  *SharedState
	number string
	sched  *fetch.Scheduler

	snap    *tree.Snapshot
	expand  *expand.State
	rows    []treeRow
	cursor  int
	offset  int
	loading bool
	err     error
	notice  string

	// overlay holds optimistic checkbox values for items with a
	// toggle in flight; cleared when a fresh snapshot lands.
	overlay map[string]bool

	spin      spinner.Model
	searching bool
	search    textinput.Model
}

func newTreeView(state *SharedState, number string) *treeView {
	app := state.App

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleYellow

	ti := textinput.New()
	ti.Placeholder = "project number"
	ti.CharLimit = 12
	ti.Prompt = formatter.StyleYellow.Render("# ")

	return &treeView{
		state:   state,
		number:  number,
		sched:   fetch.NewScheduler(app.Fetcher, app.Quiet, app.Log),
		expand:  expand.NewState(),
		overlay: make(map[string]bool),
		loading: true,
		spin:    sp,
		search:  ti,
	}
}

func (v *treeView) ID() ViewID    { return ViewTree }
func (v *treeView) Title() string { return v.number }

func (v *treeView) CapturesInput() bool { return v.searching }

// Close releases the scheduler and its results channel.
func (v *treeView) Close() {
	v.sched.Close()
}

func (v *treeView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle received")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resync")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to project")),
	}
}

func (v *treeView) Init() tea.Cmd {
	v.sched.Refresh(v.number)
	return tea.Batch(v.spin.Tick, v.waitForResult())
}

// waitForResult blocks on the scheduler's results channel and turns
// the next committed cycle into a message.
func (v *treeView) waitForResult() tea.Cmd {
	sched := v.sched
	return func() tea.Msg {
		res, ok := <-sched.Results()
		if !ok {
			return schedClosedMsg{}
		}
		return snapshotMsg{res: res}
	}
}

func (v *treeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		v.loading = false
		if msg.res.Err != nil {
			v.err = msg.res.Err
			return v, v.waitForResult()
		}
		v.err = nil
		v.number = msg.res.Number
		v.snap = msg.res.Snapshot
		// The snapshot is the durable truth; optimistic values are
		// superseded wholesale.
		v.overlay = make(map[string]bool)
		v.rebuildRows()
		return v, v.waitForResult()

	case schedClosedMsg:
		return v, nil

	case toggleDecisionMsg:
		return v.resolveToggle(msg)

	case toggleOutcomeMsg:
		return v.applyOutcome(msg.out)

	case refreshViewMsg:
		v.loading = true
		v.sched.Refresh(v.number)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *treeView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case "enter":
		v.toggleExpansion()
	case " ":
		return v.requestToggle()
	case "r":
		v.notice = ""
		v.loading = true
		v.sched.Refresh(v.number)
	case "/":
		v.searching = true
		v.search.SetValue("")
		return v, v.search.Focus()
	}
	return v, nil
}

func (v *treeView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		return v, nil
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		if number := strings.TrimSpace(v.search.Value()); number != "" {
			v.notice = ""
			v.loading = true
			v.sched.Refresh(number)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	// Each keystroke re-arms the debounce window; only the final
	// identifier is ever fetched.
	if number := strings.TrimSpace(v.search.Value()); number != "" {
		v.sched.Request(number)
	}
	return v, cmd
}

// toggleExpansion flips the expansion entry for the row under the
// cursor, keyed by (namespace, id) so identifiers from different
// collections never collide.
func (v *treeView) toggleExpansion() {
	if v.cursor >= len(v.rows) {
		return
	}
	switch row := v.rows[v.cursor]; row.kind {
	case rowAssembly:
		v.expand.Toggle(expand.AssemblyDetail, row.assembly.Assembly.ID)
	case rowSubassembly:
		v.expand.Toggle(expand.SubassemblyItems, row.sub.Subassembly.ID)
	case rowItem:
		v.expand.Toggle(expand.ItemDetail, row.item.ID)
	default:
		return
	}
	v.rebuildRows()
}

// requestToggle starts the receive/unreceive flow for the item under
// the cursor: flip the checkbox optimistically and push the
// confirmation wizard.
func (v *treeView) requestToggle() (tea.Model, tea.Cmd) {
	if v.cursor >= len(v.rows) || v.rows[v.cursor].kind != rowItem {
		return v, nil
	}
	item := v.rows[v.cursor].item

	t, err := v.state.App.Mutations.Request(item)
	if err != nil {
		v.notice = formatter.StyleYellow.Render(err.Error())
		return v, nil
	}

	v.overlay[item.ID] = t.Target
	v.notice = ""

	var title, desc string
	if t.Direction() == mutation.Receive {
		title = fmt.Sprintf("Mark %q as received?", t.ItemName)
		desc = "The arrival date will be stamped with the current time."
	} else {
		title = fmt.Sprintf("Mark %q as outstanding?", t.ItemName)
		desc = "The recorded arrival date will be cleared."
	}

	confirmed := false
	itemID := item.ID
	form := wizardConfirm(title, desc, &confirmed)
	wizard := newWizardView(v.state, "Confirm", form, func(completed bool) tea.Cmd {
		return func() tea.Msg {
			return toggleDecisionMsg{itemID: itemID, confirmed: completed && confirmed}
		}
	})
	return v, pushView(wizard)
}

// resolveToggle commits or cancels after the wizard closes.
func (v *treeView) resolveToggle(msg toggleDecisionMsg) (tea.Model, tea.Cmd) {
	app := v.state.App

	if !msg.confirmed {
		// Reverting the optimistic checkbox means falling back to the
		// snapshot's durable value.
		_, _ = app.Mutations.Cancel(msg.itemID)
		delete(v.overlay, msg.itemID)
		v.notice = formatter.Dim("Cancelled.")
		return v, nil
	}

	v.notice = formatter.Dim("Saving...")
	itemID := msg.itemID
	return v, func() tea.Msg {
		return toggleOutcomeMsg{out: app.Mutations.Confirm(context.Background(), itemID)}
	}
}

// applyOutcome handles the terminal transition: resync on success,
// revert the optimistic checkbox on failure.
func (v *treeView) applyOutcome(out mutation.Outcome) (tea.Model, tea.Cmd) {
	if out.Err != nil {
		delete(v.overlay, out.ItemID)
		v.notice = formatter.StyleRed.Render(fmt.Sprintf("Update failed: %v", out.Err))
		return v, nil
	}

	if out.Direction == mutation.Receive {
		v.notice = formatter.StyleGreen.Render(fmt.Sprintf("Received %q", out.ItemName))
	} else {
		v.notice = formatter.StyleGreen.Render(fmt.Sprintf("Marked %q outstanding", out.ItemName))
	}
	// Committed writes are followed by a full resync rather than an
	// in-place patch.
	v.loading = true
	v.sched.Refresh(v.number)
	return v, nil
}

// ── flattening ───────────────────────────────────────────────────────────────

func (v *treeView) rebuildRows() {
	v.rows = v.rows[:0]
	if v.snap == nil {
		return
	}

	if v.snap.Assemblies.Unavailable {
		v.rows = append(v.rows, treeRow{kind: rowNote, text: "assemblies unavailable"})
	}
	for _, node := range v.snap.Assemblies.Nodes {
		v.rows = append(v.rows, treeRow{kind: rowAssembly, assembly: node})
		if !v.expand.Expanded(expand.AssemblyDetail, node.Assembly.ID) {
			continue
		}

		if node.Items.Unavailable {
			v.rows = append(v.rows, treeRow{kind: rowNote, depth: 1, text: "items unavailable"})
		}
		for _, item := range node.Items.Items {
			v.appendItemRows(item, 1)
		}

		if node.Subassemblies.Unavailable {
			v.rows = append(v.rows, treeRow{kind: rowNote, depth: 1, text: "subassemblies unavailable"})
		}
		for _, sub := range node.Subassemblies.Nodes {
			v.rows = append(v.rows, treeRow{kind: rowSubassembly, depth: 1, sub: sub})
			if !v.expand.Expanded(expand.SubassemblyItems, sub.Subassembly.ID) {
				continue
			}
			if sub.Items.Unavailable {
				v.rows = append(v.rows, treeRow{kind: rowNote, depth: 2, text: "items unavailable"})
			}
			for _, item := range sub.Items.Items {
				v.appendItemRows(item, 2)
			}
		}
	}

	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *treeView) appendItemRows(item *domain.Item, depth int) {
	v.rows = append(v.rows, treeRow{kind: rowItem, depth: depth, item: item})
	if !v.expand.Expanded(expand.ItemDetail, item.ID) {
		return
	}
	if item.Supplier != "" {
		v.rows = append(v.rows, treeRow{kind: rowDetail, depth: depth + 1, text: "Supplier: " + item.Supplier})
	}
	v.rows = append(v.rows, treeRow{kind: rowDetail, depth: depth + 1,
		text: fmt.Sprintf("Price: %s × %d = %s", formatter.Money(item.Price), item.QtyRequired, formatter.Money(item.LineCost()))})
	if item.ArrivedDate != nil {
		v.rows = append(v.rows, treeRow{kind: rowDetail, depth: depth + 1, text: "Arrived: " + formatter.HumanDate(*item.ArrivedDate)})
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *treeView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.searching {
		b.WriteString("  " + v.search.View() + "\n\n")
	}

	if v.loading && v.snap == nil {
		b.WriteString("  " + v.spin.View() + formatter.Dim(" Loading "+v.number+"...") + "\n")
		return b.String()
	}
	if v.err != nil && v.snap == nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
		return b.String()
	}
	if v.snap == nil {
		return b.String()
	}

	b.WriteString(v.renderSummary())
	b.WriteString("\n")

	height := v.state.ContentHeight() - 7
	if height < 3 {
		height = 3
	}
	v.clampOffset(height)

	end := v.offset + height
	if end > len(v.rows) {
		end = len(v.rows)
	}
	for i := v.offset; i < end; i++ {
		b.WriteString(v.renderRow(i))
	}

	if v.notice != "" {
		b.WriteString("\n  " + v.notice + "\n")
	}
	return b.String()
}

func (v *treeView) clampOffset(height int) {
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+height {
		v.offset = v.cursor - height + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *treeView) renderSummary() string {
	s := v.snap
	rec, total := tree.ProjectCounts(s)

	var b strings.Builder
	header := formatter.Bold(s.Project.Number)
	if s.Project.Description != "" {
		header += "  " + formatter.StyleFg.Render(s.Project.Description)
	}
	if v.loading {
		header += "  " + v.spin.View()
	}
	b.WriteString("  " + header + "\n")
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		formatter.RenderProgress(v.progressWithOverlay(), 20),
		formatter.RenderCounts(rec, total),
		formatter.Dim("cost ")+formatter.Money(tree.MaterialCost(s))))

	people := renderPeople("Managers", s.Managers) + "   " + renderPeople("Operators", s.Operators)
	b.WriteString("  " + people + "\n")
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Resync failed: "+v.err.Error()) + "\n")
	}
	return b.String()
}

// progressWithOverlay recomputes project progress with optimistic
// checkbox values applied, so the bar moves the instant a toggle is
// requested.
func (v *treeView) progressWithOverlay() float64 {
	if len(v.overlay) == 0 {
		return tree.ProjectProgress(v.snap)
	}
	rec, total := 0, 0
	walk := func(l tree.ItemList) {
		if l.Unavailable {
			return
		}
		for _, i := range l.Items {
			total++
			received := i.Received
			if target, ok := v.overlay[i.ID]; ok {
				received = target
			}
			if received {
				rec++
			}
		}
	}
	for _, a := range v.snap.Assemblies.Nodes {
		walk(a.Items)
		for _, sub := range a.Subassemblies.Nodes {
			walk(sub.Items)
		}
	}
	if total == 0 {
		return 0
	}
	return float64(rec) / float64(total) * 100
}

func renderPeople(label string, l tree.AssignmentList) string {
	if l.Unavailable {
		return formatter.Dim(label+":") + " " + formatter.Dim("unavailable")
	}
	if len(l.Assignments) == 0 {
		return formatter.Dim(label+":") + " " + formatter.Dim("none")
	}
	names := make([]string, len(l.Assignments))
	for i, a := range l.Assignments {
		names[i] = a.UserName
	}
	return formatter.Dim(label+":") + " " + strings.Join(names, ", ")
}

func (v *treeView) renderRow(i int) string {
	row := v.rows[i]
	indent := strings.Repeat("  ", row.depth)

	cursor := "  "
	if i == v.cursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}

	switch row.kind {
	case rowAssembly:
		rec, total := tree.AssemblyCounts(row.assembly)
		marker := v.expandMarker(expand.AssemblyDetail, row.assembly.Assembly.ID)
		return fmt.Sprintf("  %s%s%s %s  %s %s\n",
			cursor, indent, marker,
			formatter.Bold(row.assembly.Assembly.Number),
			formatter.RenderProgress(tree.AssemblyProgress(row.assembly), 10),
			formatter.Dim(formatter.RenderCounts(rec, total)))

	case rowSubassembly:
		marker := v.expandMarker(expand.SubassemblyItems, row.sub.Subassembly.ID)
		return fmt.Sprintf("  %s%s%s %s  %s\n",
			cursor, indent, marker,
			formatter.StyleBlue.Render(row.sub.Subassembly.Number),
			formatter.RenderProgress(tree.SubassemblyProgress(row.sub), 10))

	case rowItem:
		received := row.item.Received
		if target, ok := v.overlay[row.item.ID]; ok {
			received = target
		}
		name := row.item.Name
		if received {
			name = formatter.Dim(name)
		}
		pending := ""
		if _, ok := v.state.App.Mutations.Pending(row.item.ID); ok {
			pending = " " + formatter.StyleYellow.Render("…")
		}
		return fmt.Sprintf("  %s%s%s %s%s\n", cursor, indent, formatter.Checkbox(received), name, pending)

	case rowDetail:
		return fmt.Sprintf("  %s%s%s\n", cursor, indent, formatter.Dim(row.text))

	default: // rowNote
		return fmt.Sprintf("  %s%s%s\n", cursor, indent, formatter.StyleYellow.Render("⚠ "+row.text))
	}
}

func (v *treeView) expandMarker(ns expand.Namespace, id string) string {
	if v.expand.Expanded(ns, id) {
		return formatter.Dim("▾")
	}
	return formatter.Dim("▸")
}
