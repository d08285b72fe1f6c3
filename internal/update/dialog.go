package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

type ConfirmAction string

const (
	ConfirmDeleteTask  ConfirmAction = "delete_task"
	ConfirmDeletePlan  ConfirmAction = "delete_plan"
	ConfirmRestoreTask ConfirmAction = "restore_task"
	ConfirmPurgeTask   ConfirmAction = "purge_task"
)

const (
	promptDeleteTask  = "Are you sure you want to delete this task?"
	promptDeletePlan  = "Are you sure you want to delete this plan?"
	promptRestoreTask = "Restore this task to your active task list?"
	promptPurgeTask   = "Are you sure you want to permanently delete this task? This cannot be undone."
)

// ConfirmState is a pending yes/no question. TargetID is captured when the
// dialog opens so the action applies to that item even if the list changes.
type ConfirmState struct {
	Active   bool
	Prompt   string
	Action   ConfirmAction
	TargetID string
}

type AlertState struct {
	Active bool
	Text   string
}

func (m *Model) askConfirm(action ConfirmAction, prompt, targetID string) {
	m.Confirm = ConfirmState{Active: true, Prompt: prompt, Action: action, TargetID: targetID}
}

func (m *Model) showAlert(text string) {
	m.Alert = AlertState{Active: true, Text: text}
}

func (m Model) handleAlertKey(tea.KeyMsg) Model {
	m.Alert = AlertState{}
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		pending := m.Confirm
		m.Confirm = ConfirmState{}
		return m.runConfirmed(pending)
	case "n", "N", "esc":
		m.Confirm = ConfirmState{}
	}
	return m, nil
}

func (m Model) runConfirmed(c ConfirmState) (Model, tea.Cmd) {
	switch c.Action {
	case ConfirmDeleteTask:
		return m.deleteTask(c.TargetID)
	case ConfirmDeletePlan:
		return m.deletePlan(c.TargetID)
	case ConfirmRestoreTask:
		return m.restoreTask(c.TargetID)
	case ConfirmPurgeTask:
		return m.purgeTask(c.TargetID)
	}
	return m, nil
}
