package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	toastTaskRestored = "Task restored!"
	toastTaskPurged   = "Task permanently deleted! 🗑️"
)

func (m Model) handleCompletedKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Completed.Cursor > 0 {
			m.Completed.Cursor--
		}
	case "down", "j":
		if m.Completed.Cursor < len(m.Completed.Items)-1 {
			m.Completed.Cursor++
		}
	case "r":
		if task, ok := m.currentCompleted(); ok {
			m.askConfirm(ConfirmRestoreTask, promptRestoreTask, task.ID)
		}
	case "x", "d":
		if task, ok := m.currentCompleted(); ok {
			m.askConfirm(ConfirmPurgeTask, promptPurgeTask, task.ID)
		}
	}
	return m, nil
}

func (m Model) restoreTask(id string) (Model, tea.Cmd) {
	if _, err := m.service.RestoreTask(context.Background(), id); err != nil {
		return m.failed(err, "completed tasks")
	}
	m.reload()
	cmd := m.toast(toastTaskRestored)
	return m, cmd
}

func (m Model) purgeTask(id string) (Model, tea.Cmd) {
	if err := m.service.PurgeTask(context.Background(), id); err != nil {
		return m.failed(err, "completed tasks")
	}
	m.reload()
	cmd := m.toast(toastTaskPurged)
	return m, cmd
}
