package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasktrack/internal/commands"
)

func (m *Model) openPalette() tea.Cmd {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	return m.setStatus("command palette active", false)
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, m.setStatus("command palette closed", false)
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}

	ctx := context.Background()
	var out []tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Task: func(a commands.TaskArgs) (commands.Result, error) {
			task, err := m.service.AddTask(ctx, a.Text)
			if err != nil {
				return commands.Result{}, err
			}
			m.switchView(ViewTasks)
			return commands.Result{Message: fmt.Sprintf("added task: %s", task.Text)}, nil
		},
		Plan: func(a commands.PlanArgs) (commands.Result, error) {
			plan, err := m.service.CreatePlan(ctx, a.Title, a.Description)
			if err != nil {
				return commands.Result{}, err
			}
			m.switchView(ViewPlans)
			out = append(out, m.toast(toastPlanCreated))
			return commands.Result{Message: fmt.Sprintf("created plan: %s", plan.Title)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case "plans":
				m.switchView(ViewPlans)
			case "completed":
				m.switchView(ViewCompleted)
			default:
				m.switchView(ViewTasks)
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", s.Subject)}, nil
		},
		Restore: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := m.service.RestoreTask(ctx, t.ID)
			if err != nil {
				return commands.Result{}, err
			}
			m.reload()
			out = append(out, m.toast(toastTaskRestored))
			return commands.Result{Message: fmt.Sprintf("restored task: %s", task.Text)}, nil
		},
		Purge: func(t commands.TargetArgs) (commands.Result, error) {
			if err := m.service.PurgeTask(ctx, t.ID); err != nil {
				return commands.Result{}, err
			}
			m.reload()
			out = append(out, m.toast(toastTaskPurged))
			return commands.Result{Message: fmt.Sprintf("purged task %s", t.ID)}, nil
		},
	})
	if err != nil {
		return m.failed(err, "data")
	}
	out = append(out, m.setStatus(res.Message, false))
	return m, tea.Batch(out...)
}
