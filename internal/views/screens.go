package views

import (
	"fmt"
	"strings"
	"time"
)

const (
	EmptyPlansText     = "No plans created yet. Create your first plan above!"
	EmptyCompletedText = "No completed tasks yet. Complete some tasks to see them here!"
	EmptyTasksText     = "No tasks yet."
)

type TaskRow struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

type TasksPanelData struct {
	InputView string
	Capturing bool
	Items     []TaskRow
	Cursor    int
}

type PlanRow struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
	Status      string
	Edited      bool
}

type PlansPanelData struct {
	TitleView       string
	DescriptionView string
	FormActive      bool
	Items           []PlanRow
	Cursor          int
}

type PlanDetailData struct {
	Plan         *PlanRow
	MarkdownView string
}

type PlanEditorData struct {
	TitleView       string
	DescriptionView string
}

type CompletedRow struct {
	ID          string
	Text        string
	CompletedAt time.Time
}

type CompletedPanelData struct {
	Items  []CompletedRow
	Cursor int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}

func FormatDateTime(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 3:04:05 PM")
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Add a New Task") + "\n")
	b.WriteString(data.InputView + "\n")
	if data.Capturing {
		b.WriteString(mutedStyle.Render("[enter]add [esc]list") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("[i]type [j/k]move [c]complete [d]delete") + "\n")
	}
	b.WriteString("\n" + headerStyle.Render("My Tasks") + "\n")
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render(EmptyTasksText))
		return b.String()
	}
	for i, item := range data.Items {
		b.WriteString(fmt.Sprintf("%s %s\n", cursorMark(!data.Capturing && i == data.Cursor), item.Text))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderPlansPanel(data PlansPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Create New Plan") + "\n")
	b.WriteString(data.TitleView + "\n")
	b.WriteString(data.DescriptionView + "\n")
	if data.FormActive {
		b.WriteString(mutedStyle.Render("[tab]field [ctrl+s]create [esc]list") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("[i]form [j/k]move [e]edit [x]delete") + "\n")
	}
	b.WriteString("\n" + headerStyle.Render("My Plans") + "\n")
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render(EmptyPlansText))
		return b.String()
	}
	for i, plan := range data.Items {
		b.WriteString(fmt.Sprintf("%s %s  %s  %s\n",
			cursorMark(!data.FormActive && i == data.Cursor),
			plan.Title,
			mutedStyle.Render("Created: "+FormatDate(plan.CreatedAt)),
			badgeStyle.Render(plan.Status),
		))
		if summary := SummarizeDescription(plan.Description, descriptionSummaryWidth); summary != "" {
			b.WriteString("  " + mutedStyle.Render(summary) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

const descriptionSummaryWidth = 56

// SummarizeDescription collapses desc onto one line and cuts it to at most
// width runes, marking a cut with an ellipsis.
func SummarizeDescription(desc string, width int) string {
	flat := strings.Join(strings.Fields(desc), " ")
	runes := []rune(flat)
	if width <= 0 || len(runes) <= width {
		return flat
	}
	return strings.TrimSpace(string(runes[:width-1])) + "…"
}

func RenderPlanDetail(data PlanDetailData) string {
	if data.Plan == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.Plan.Title) + "\n")
	meta := fmt.Sprintf("Created: %s | %s", FormatDate(data.Plan.CreatedAt), data.Plan.Status)
	if data.Plan.Edited {
		meta += " | edited"
	}
	b.WriteString(mutedStyle.Render(meta) + "\n\n")
	b.WriteString(data.MarkdownView)
	return b.String()
}

func RenderPlanEditor(data PlanEditorData) string {
	var b strings.Builder
	b.WriteString("Edit plan\n")
	b.WriteString(data.TitleView + "\n")
	b.WriteString(data.DescriptionView + "\n")
	b.WriteString(mutedStyle.Render("[tab]field [ctrl+s]save [esc]cancel"))
	return b.String()
}

func RenderCompletedPanel(data CompletedPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Completed Tasks") + "\n")
	b.WriteString(fmt.Sprintf("Total completed: %d\n", len(data.Items)))
	b.WriteString(mutedStyle.Render("[j/k]move [r]restore [x]delete permanently") + "\n\n")
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render(EmptyCompletedText))
		return b.String()
	}
	for i, item := range data.Items {
		b.WriteString(fmt.Sprintf("%s %s\n", cursorMark(i == data.Cursor), item.Text))
		b.WriteString("  " + mutedStyle.Render("Completed: "+FormatDateTime(item.CompletedAt)) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderConfirmDialog(prompt string) string {
	return fmt.Sprintf("%s\n\n[y]es / [n]o", prompt)
}

func RenderAlert(text string) string {
	return fmt.Sprintf("%s\n\n(press any key)", text)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func cursorMark(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}
