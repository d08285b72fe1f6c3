package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasktrack/internal/model"
	"github.com/sandeepkv93/tasktrack/internal/storage"
	"github.com/sandeepkv93/tasktrack/internal/tracker"
)

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func (m Model) currentTask() (model.ActiveTask, bool) {
	if len(m.Tasks.Items) == 0 {
		return model.ActiveTask{}, false
	}
	return m.Tasks.Items[clampCursor(m.Tasks.Cursor, len(m.Tasks.Items))], true
}

func (m Model) currentPlan() (model.Plan, bool) {
	if len(m.Plans.Items) == 0 {
		return model.Plan{}, false
	}
	return m.Plans.Items[clampCursor(m.Plans.Cursor, len(m.Plans.Items))], true
}

func (m Model) currentCompleted() (model.CompletedTask, bool) {
	if len(m.Completed.Items) == 0 {
		return model.CompletedTask{}, false
	}
	return m.Completed.Items[clampCursor(m.Completed.Cursor, len(m.Completed.Items))], true
}

func (m Model) planByID(id int64) (model.Plan, bool) {
	for _, p := range m.Plans.Items {
		if p.ID == id {
			return p, true
		}
	}
	return model.Plan{}, false
}

// failed surfaces err to the user. Write failures and validation errors
// become an alert; a vanished item only updates the status line and
// refreshes the lists.
func (m Model) failed(err error, kind string) (Model, tea.Cmd) {
	m.LastError = err
	switch {
	case errors.Is(err, storage.ErrSaveFailed):
		m.showAlert(fmt.Sprintf("Error saving %s. Please try again.", kind))
	case errors.Is(err, model.ErrEmptyTaskText):
		m.showAlert(alertEmptyTask)
	case errors.Is(err, model.ErrEmptyPlanField):
		m.showAlert(alertEmptyPlanForm)
	case errors.Is(err, tracker.ErrTaskNotFound), errors.Is(err, tracker.ErrPlanNotFound):
		return m, tea.Batch(m.setStatus(err.Error(), true), func() tea.Msg { return ReloadMsg{} })
	default:
		return m, m.setStatus(err.Error(), true)
	}
	return m, nil
}
