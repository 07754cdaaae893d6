package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlindner/asmtrack/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the TUI. It manages a view
// stack; the project list is the home view.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{
		state:     state,
		viewStack: []View{newProjectListView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.popView()
		}
		return m, nil

	case refreshViewMsg:
		// Broadcast to the whole stack so views below the top reload
		// after mutations made above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd
	}

	// Forward other messages (async loads, spinner ticks, scheduler
	// results) to every view so an obscured tree view keeps receiving
	// its snapshots.
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		m.closeViews()
		return m, tea.Quit
	}

	// Views with their own text input get every key, including 'q'.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		m.closeViews()
		return m, tea.Quit
	case "esc":
		if len(m.viewStack) > 1 {
			m.popView()
			return m, nil
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m *appModel) popView() {
	if closer, ok := m.activeView().(interface{ Close() }); ok {
		closer.Close()
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}

// closeViews releases resources held by views (scheduler goroutines)
// before quitting.
func (m *appModel) closeViews() {
	for _, v := range m.viewStack {
		if closer, ok := v.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

// viewCapturesInput reports whether the view owns a focused text
// input and so must receive raw keys.
func viewCapturesInput(v View) bool {
	capturer, ok := v.(interface{ CapturesInput() bool })
	return ok && capturer.CapturesInput()
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())
	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("asmtrack")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	sep := ""
	if m.state.Width > 0 {
		sep = "\n" + formatter.Dim(strings.Repeat("─", m.state.Width))
	}
	return " " + title + breadcrumb + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			h := b.Help()
			hints = append(hints, formatter.StyleYellow.Render(h.Key)+" "+formatter.Dim(h.Desc))
		}
	}
	hints = append(hints, formatter.StyleYellow.Render("q")+" "+formatter.Dim("quit"))

	sep := ""
	if m.state.Width > 0 {
		sep = formatter.Dim(strings.Repeat("─", m.state.Width)) + "\n"
	}
	return sep + " " + strings.Join(hints, "  ")
}
