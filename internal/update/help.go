package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasktrack/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	global := toKeyBindings(m.globalBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.FullHelpView([][]key.Binding{
			global,
			toKeyBindings(m.viewBindings()),
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "tasks"},
		{Key: m.Keys.Plans, Action: "plans"},
		{Key: m.Keys.Completed, Action: "completed"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "i", Action: "type a task"},
			{Key: "enter", Action: "add task"},
			{Key: "esc", Action: "leave input"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "c", Action: "complete task"},
			{Key: "d", Action: "delete task"},
		}
	case ViewPlans:
		return []KeyBinding{
			{Key: "i", Action: "open plan form"},
			{Key: "tab", Action: "switch field"},
			{Key: "ctrl+s", Action: "create / save plan"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "e", Action: "edit plan"},
			{Key: "x", Action: "delete plan"},
		}
	case ViewCompleted:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "r", Action: "restore task"},
			{Key: "x", Action: "delete permanently"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() helpKeyMap {
	global := toKeyBindings(m.globalBindings())
	return helpKeyMap{
		short: global,
		full:  [][]key.Binding{global, toKeyBindings(m.viewBindings())},
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
