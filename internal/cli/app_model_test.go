package cli

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return nil }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, nil
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return nil }
func (v *stubView) Title() string            { return v.title }

func TestNewAppModelStartsAtProjectList(t *testing.T) {
	m := newAppModel(testApp(t))

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewProjectList, m.activeView().ID())
}

func TestAppModel_NavigationMessages(t *testing.T) {
	m := newAppModel(testApp(t))
	v2 := &stubView{id: ViewTree, title: "2024-900", viewText: "tree"}

	model, cmd := m.Update(pushViewMsg{view: v2})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v2, m.activeView())

	model, _ = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewProjectList, m.activeView().ID())
}

func TestAppModel_EscPopsButNeverEmptiesStack(t *testing.T) {
	m := newAppModel(testApp(t))
	v2 := &stubView{id: ViewTree, title: "2024-900"}
	m.viewStack = append(m.viewStack, v2)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
}

func TestAppModel_RefreshBroadcastsToWholeStack(t *testing.T) {
	m := newAppModel(testApp(t))
	below := &stubView{id: ViewTree, title: "below"}
	top := &stubView{id: ViewForm, title: "top"}
	m.viewStack = []View{below, top}

	model, _ := m.Update(refreshViewMsg{})
	_ = model

	require.Len(t, below.updateSeen, 1)
	require.Len(t, top.updateSeen, 1)
	_, ok := below.updateSeen[0].(refreshViewMsg)
	assert.True(t, ok)
}

func TestAppModel_WizardCompletePopsAndRunsFollowup(t *testing.T) {
	m := newAppModel(testApp(t))
	m.viewStack = append(m.viewStack, &stubView{id: ViewForm, title: "wizard"})

	ran := false
	model, cmd := m.Update(wizardCompleteMsg{nextCmd: func() tea.Msg { ran = true; return nil }})
	m = model.(appModel)

	require.Len(t, m.viewStack, 1)
	require.NotNil(t, cmd)
	cmd()
	assert.True(t, ran)
}

func TestAppModel_HeaderShowsBreadcrumb(t *testing.T) {
	m := newAppModel(testApp(t))
	m.viewStack = append(m.viewStack, &stubView{id: ViewTree, title: "2024-900"})

	header := m.renderHeader()
	assert.Contains(t, header, "asmtrack")
	assert.Contains(t, header, "Projects")
	assert.Contains(t, header, "2024-900")
}
