package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	alertEmptyTask     = "Please enter a task!"
	toastTaskCompleted = "Task completed! ✅"
	toastTaskDeleted   = "Task deleted! 🗑️"
)

func (m *Model) startTaskCapture() {
	m.Tasks.Capturing = true
	m.taskInput.Focus()
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Tasks.Capturing {
		switch msg.String() {
		case "esc":
			m.Tasks.Capturing = false
			m.taskInput.Blur()
			return m, nil
		case "enter":
			return m.submitTask()
		}
		var cmd tea.Cmd
		m.taskInput, cmd = m.taskInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "i", "a", "enter":
		m.startTaskCapture()
	case "up", "k":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
	case "down", "j":
		if m.Tasks.Cursor < len(m.Tasks.Items)-1 {
			m.Tasks.Cursor++
		}
	case "c":
		if task, ok := m.currentTask(); ok {
			return m.completeTask(task.ID)
		}
	case "d":
		if task, ok := m.currentTask(); ok {
			m.askConfirm(ConfirmDeleteTask, promptDeleteTask, task.ID)
		}
	}
	return m, nil
}

func (m Model) submitTask() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.taskInput.Value())
	if text == "" {
		m.showAlert(alertEmptyTask)
		return m, nil
	}
	return m.addTask(text)
}

func (m Model) addTask(text string) (Model, tea.Cmd) {
	if _, err := m.service.AddTask(context.Background(), text); err != nil {
		return m.failed(err, "tasks")
	}
	m.taskInput.SetValue("")
	m.reload()
	m.Tasks.Cursor = clampCursor(len(m.Tasks.Items)-1, len(m.Tasks.Items))
	return m, nil
}

func (m Model) completeTask(id string) (Model, tea.Cmd) {
	if _, err := m.service.CompleteTask(context.Background(), id); err != nil {
		return m.failed(err, "completed tasks")
	}
	m.reload()
	cmd := m.toast(toastTaskCompleted)
	return m, cmd
}

func (m Model) deleteTask(id string) (Model, tea.Cmd) {
	if err := m.service.DeleteTask(context.Background(), id); err != nil {
		return m.failed(err, "tasks")
	}
	m.reload()
	cmd := m.toast(toastTaskDeleted)
	return m, cmd
}
