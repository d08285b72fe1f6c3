package update

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	alertEmptyPlanForm = "Please fill in both title and description!"
	alertEmptyPlanEdit = "Title and description cannot be empty!"
	toastPlanCreated   = "Plan created!"
	toastPlanUpdated   = "Plan updated!"
	toastPlanDeleted   = "Plan deleted! 🗑️"
)

func (m *Model) openPlanForm() {
	m.Plans.FormActive = true
	m.focusPlanFormField(PlanFieldTitle)
}

func (m *Model) closePlanForm() {
	m.Plans.FormActive = false
	m.planTitleInput.Blur()
	m.planDescArea.Blur()
}

func (m *Model) focusPlanFormField(f PlanField) {
	m.Plans.FormField = f
	if f == PlanFieldTitle {
		m.planDescArea.Blur()
		m.planTitleInput.Focus()
		return
	}
	m.planTitleInput.Blur()
	m.planDescArea.Focus()
}

func (m Model) handlePlansKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Plans.Editor.Active {
		return m.handlePlanEditorKey(msg)
	}
	if m.Plans.FormActive {
		return m.handlePlanFormKey(msg)
	}

	switch msg.String() {
	case "i", "a", "n":
		m.openPlanForm()
	case "up", "k":
		if m.Plans.Cursor > 0 {
			m.Plans.Cursor--
		}
	case "down", "j":
		if m.Plans.Cursor < len(m.Plans.Items)-1 {
			m.Plans.Cursor++
		}
	case "e", "enter":
		if plan, ok := m.currentPlan(); ok {
			m.openPlanEditor(plan.ID)
		}
	case "x", "d":
		if plan, ok := m.currentPlan(); ok {
			m.askConfirm(ConfirmDeletePlan, promptDeletePlan, strconv.FormatInt(plan.ID, 10))
		}
	}
	return m, nil
}

func (m Model) handlePlanFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePlanForm()
		return m, nil
	case "tab", "shift+tab":
		if m.Plans.FormField == PlanFieldTitle {
			m.focusPlanFormField(PlanFieldDescription)
		} else {
			m.focusPlanFormField(PlanFieldTitle)
		}
		return m, nil
	case "ctrl+s":
		return m.submitPlan()
	case "enter":
		if m.Plans.FormField == PlanFieldTitle {
			m.focusPlanFormField(PlanFieldDescription)
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.Plans.FormField == PlanFieldTitle {
		m.planTitleInput, cmd = m.planTitleInput.Update(msg)
	} else {
		m.planDescArea, cmd = m.planDescArea.Update(msg)
	}
	return m, cmd
}

func (m Model) submitPlan() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.planTitleInput.Value())
	desc := strings.TrimSpace(m.planDescArea.Value())
	if title == "" || desc == "" {
		m.showAlert(alertEmptyPlanForm)
		return m, nil
	}
	return m.createPlan(title, desc)
}

func (m Model) createPlan(title, desc string) (Model, tea.Cmd) {
	if _, err := m.service.CreatePlan(context.Background(), title, desc); err != nil {
		return m.failed(err, "plans")
	}
	m.planTitleInput.SetValue("")
	m.planDescArea.Reset()
	m.focusPlanFormField(PlanFieldTitle)
	m.reload()
	cmd := m.toast(toastPlanCreated)
	return m, cmd
}

func (m *Model) openPlanEditor(id int64) {
	plan, ok := m.planByID(id)
	if !ok {
		return
	}
	m.Plans.Editor = PlanEditorState{Active: true, PlanID: id, Field: PlanFieldTitle}
	m.editTitleInput.SetValue(plan.Title)
	m.editDescArea.SetValue(plan.Description)
	m.editDescArea.Blur()
	m.editTitleInput.Focus()
}

func (m *Model) closePlanEditor() {
	m.Plans.Editor = PlanEditorState{}
	m.editTitleInput.Blur()
	m.editDescArea.Blur()
}

func (m Model) handlePlanEditorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePlanEditor()
		return m, m.setStatus("edit cancelled", false)
	case "tab", "shift+tab":
		if m.Plans.Editor.Field == PlanFieldTitle {
			m.Plans.Editor.Field = PlanFieldDescription
			m.editTitleInput.Blur()
			m.editDescArea.Focus()
		} else {
			m.Plans.Editor.Field = PlanFieldTitle
			m.editDescArea.Blur()
			m.editTitleInput.Focus()
		}
		return m, nil
	case "ctrl+s":
		return m.saveEditedPlan()
	}

	var cmd tea.Cmd
	if m.Plans.Editor.Field == PlanFieldTitle {
		m.editTitleInput, cmd = m.editTitleInput.Update(msg)
	} else {
		m.editDescArea, cmd = m.editDescArea.Update(msg)
	}
	return m, cmd
}

// saveEditedPlan keeps the editor open when a field is blank so the user
// can fix it; the stored plan is not touched.
func (m Model) saveEditedPlan() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.editTitleInput.Value())
	desc := strings.TrimSpace(m.editDescArea.Value())
	if title == "" || desc == "" {
		m.showAlert(alertEmptyPlanEdit)
		return m, nil
	}
	id := m.Plans.Editor.PlanID
	if _, err := m.service.EditPlan(context.Background(), id, title, desc); err != nil {
		m.closePlanEditor()
		return m.failed(err, "plans")
	}
	m.closePlanEditor()
	m.reload()
	cmd := m.toast(toastPlanUpdated)
	return m, cmd
}

func (m Model) deletePlan(rawID string) (Model, tea.Cmd) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return m.failed(err, "plans")
	}
	if err := m.service.DeletePlan(context.Background(), id); err != nil {
		return m.failed(err, "plans")
	}
	m.reload()
	cmd := m.toast(toastPlanDeleted)
	return m, cmd
}
