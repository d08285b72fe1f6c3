package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Tabs       []string
	ActiveTab  int
	LeftPane   string
	RightPane  string
	Overlay    string
	Toasts     []string
	StatusLine string
	StatusErr  bool
	Footer     string
	Width      int
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	overlayStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 2)
	toastStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("39")).Padding(0, 2)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
)

// paneWidth splits the terminal width between two panels. Zero means the
// size is not known yet.
func paneWidth(total int) int {
	if total <= 0 {
		return 72
	}
	w := total/2 - 4
	if w < 30 {
		w = 30
	}
	return w
}

func RenderApp(data AppData) string {
	width := paneWidth(data.Width)

	tabs := make([]string, 0, len(data.Tabs))
	for i, tab := range data.Tabs {
		if i == data.ActiveTab {
			tabs = append(tabs, activeTabStyle.Render(tab))
			continue
		}
		tabs = append(tabs, tabStyle.Render(tab))
	}

	left := panelStyle.Width(width).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, panelStyle.Width(width).Render(data.RightPane))
	}

	lines := []string{headerStyle.Render(data.Header)}
	if len(tabs) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	}
	if len(data.Toasts) > 0 {
		rendered := make([]string, 0, len(data.Toasts))
		for _, t := range data.Toasts {
			rendered = append(rendered, toastStyle.Render(t))
		}
		lines = append(lines, lipgloss.JoinVertical(lipgloss.Right, rendered...))
	}
	if data.Overlay != "" {
		lines = append(lines, overlayStyle.Render(data.Overlay))
	}
	lines = append(lines, row)

	if data.StatusLine != "" {
		if data.StatusErr {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md for the terminal, falling back to the raw text
// when glamour fails.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
