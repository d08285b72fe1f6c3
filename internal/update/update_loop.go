package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasktrack/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForDismissCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.switchView(typed.View)
		}
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	case ClearStatusMsg:
		if typed.seq == 0 || typed.seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		if typed.Err == nil {
			return m, nil
		}
		m.LastError = typed.Err
		return m, m.setStatus(typed.Err.Error(), true)
	case DismissNotificationMsg:
		m.dismiss(typed.ID, !typed.fromScheduler)
		if typed.fromScheduler && m.Scheduler != nil {
			return m, waitForDismissCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

// handleKey routes a key press to whatever currently owns the keyboard:
// an open dialog first, then the palette, then a focused input, and only
// then the global and per-view bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}
	if m.Alert.Active {
		return m.handleAlertKey(msg), nil
	}
	if m.Confirm.Active {
		return m.handleConfirmKey(msg)
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.inputFocused() {
		return m.handleViewKey(msg)
	}

	switch keyStr {
	case "/":
		return m, m.openPalette()
	case m.Keys.Tasks:
		m.switchView(ViewTasks)
		return m, nil
	case m.Keys.Plans:
		m.switchView(ViewPlans)
		return m, nil
	case m.Keys.Completed:
		m.switchView(ViewCompleted)
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		return m.quit()
	}
	return m.handleViewKey(msg)
}

// quit drops the remaining toasts and their pending dismissals.
func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	for len(m.Notifications) > 0 {
		m.dismiss(m.Notifications[0].ID, true)
	}
	return m, tea.Quit
}

func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.CurrentView {
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewPlans:
		return m.handlePlansKey(msg)
	case ViewCompleted:
		return m.handleCompletedKey(msg)
	}
	return m, nil
}

func (m Model) inputFocused() bool {
	switch m.CurrentView {
	case ViewTasks:
		return m.Tasks.Capturing
	case ViewPlans:
		return m.Plans.FormActive || m.Plans.Editor.Active
	}
	return false
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		status = fmt.Sprintf("status: %s", m.Status.Text)
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
	case ViewPlans:
		leftPane = m.renderPlansView()
		rightPane = m.renderPlanDetailPane()
	case ViewCompleted:
		leftPane = m.renderCompletedView()
	}
	if palette := m.renderCommandPalette(); palette != "" {
		leftPane = palette + "\n\n" + leftPane
	}
	if helpView := m.renderHelpIfVisible(); helpView != "" {
		if rightPane != "" {
			rightPane += "\n\n"
		}
		rightPane += helpView
	}

	hints := []string{m.Keys.Tasks, m.Keys.Plans, m.Keys.Completed}
	tabs := make([]string, 0, len(allViews))
	active := 0
	for i, v := range allViews {
		tabs = append(tabs, fmt.Sprintf("%s %s", hints[i], v))
		if v == m.CurrentView {
			active = i
		}
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("tasktrack | view: %s", m.CurrentView),
		Tabs:       tabs,
		ActiveTab:  active,
		LeftPane:   leftPane,
		RightPane:  rightPane,
		Overlay:    m.renderOverlay(),
		Toasts:     m.renderToasts(),
		StatusLine: status,
		StatusErr:  m.Status.IsError,
		Footer:     m.helpModel.View(m.helpBindings()),
		Width:      m.width,
	})
}
