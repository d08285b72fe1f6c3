package update

import (
	"github.com/sandeepkv93/tasktrack/internal/model"
	"github.com/sandeepkv93/tasktrack/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderToasts() []string {
	out := make([]string, 0, len(m.Notifications))
	for _, n := range m.Notifications {
		out = append(out, n.Body)
	}
	return out
}

func (m Model) renderOverlay() string {
	switch {
	case m.Alert.Active:
		return views.RenderAlert(m.Alert.Text)
	case m.Confirm.Active:
		return views.RenderConfirmDialog(m.Confirm.Prompt)
	default:
		return ""
	}
}

func (m Model) renderTasksView() string {
	rows := make([]views.TaskRow, 0, len(m.Tasks.Items))
	for _, t := range m.Tasks.Items {
		rows = append(rows, views.TaskRow{ID: t.ID, Text: t.Text, CreatedAt: t.CreatedAt})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		InputView: m.taskInput.View(),
		Capturing: m.Tasks.Capturing,
		Items:     rows,
		Cursor:    m.Tasks.Cursor,
	})
}

func (m Model) renderPlansView() string {
	rows := make([]views.PlanRow, 0, len(m.Plans.Items))
	for _, p := range m.Plans.Items {
		rows = append(rows, planRow(p))
	}
	return views.RenderPlansPanel(views.PlansPanelData{
		TitleView:       m.planTitleInput.View(),
		DescriptionView: m.planDescArea.View(),
		FormActive:      m.Plans.FormActive,
		Items:           rows,
		Cursor:          m.Plans.Cursor,
	})
}

// renderPlanDetailPane shows the plan editor while editing, otherwise the
// selected plan with its description rendered as markdown.
func (m Model) renderPlanDetailPane() string {
	if m.Plans.Editor.Active {
		return views.RenderPlanEditor(views.PlanEditorData{
			TitleView:       m.editTitleInput.View(),
			DescriptionView: m.editDescArea.View(),
		})
	}
	p, ok := m.currentPlan()
	if !ok {
		return ""
	}
	row := planRow(p)
	vp := m.detailViewport
	vp.SetContent(views.RenderMarkdown(p.Description))
	return views.RenderPlanDetail(views.PlanDetailData{Plan: &row, MarkdownView: vp.View()})
}

func (m Model) renderCompletedView() string {
	rows := make([]views.CompletedRow, 0, len(m.Completed.Items))
	for _, t := range m.Completed.Items {
		rows = append(rows, views.CompletedRow{ID: t.ID, Text: t.Text, CompletedAt: t.CompletedAt})
	}
	return views.RenderCompletedPanel(views.CompletedPanelData{Items: rows, Cursor: m.Completed.Cursor})
}

func planRow(p model.Plan) views.PlanRow {
	return views.PlanRow{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		Status:      string(p.Status),
		Edited:      p.UpdatedAt != nil,
	}
}
