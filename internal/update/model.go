package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/tasktrack/internal/config"
	"github.com/sandeepkv93/tasktrack/internal/model"
	"github.com/sandeepkv93/tasktrack/internal/scheduler"
	"github.com/sandeepkv93/tasktrack/internal/tracker"
)

type View string

const (
	ViewTasks     View = "Tasks"
	ViewPlans     View = "Plans"
	ViewCompleted View = "Completed"
)

var allViews = []View{ViewTasks, ViewPlans, ViewCompleted}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks     string
	Plans     string
	Completed string
	Help      string
	Quit      string
}

type Model struct {
	CurrentView   View
	Tasks         TasksState
	Plans         PlansState
	Completed     CompletedState
	Confirm       ConfirmState
	Alert         AlertState
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	statusSeq     int
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	DesktopEnabled bool
	notifier       DesktopNotifier
	notifyDelay    time.Duration

	service   *tracker.Service
	Scheduler *scheduler.Engine

	taskInput      textinput.Model
	planTitleInput textinput.Model
	planDescArea   textarea.Model
	editTitleInput textinput.Model
	editDescArea   textarea.Model
	commandInput   textinput.Model
	helpModel      help.Model
	detailViewport viewport.Model
	width, height  int
}

type TasksState struct {
	Items     []model.ActiveTask
	Cursor    int
	Capturing bool
}

type PlanField int

const (
	PlanFieldTitle PlanField = iota
	PlanFieldDescription
)

type PlansState struct {
	Items      []model.Plan
	Cursor     int
	FormActive bool
	FormField  PlanField
	Editor     PlanEditorState
}

type PlanEditorState struct {
	Active bool
	PlanID int64
	Field  PlanField
}

type CompletedState struct {
	Items  []model.CompletedTask
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	ID    string
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

// ClearStatusMsg empties the status line. One sent by a status timer only
// clears the status it was armed for.
type ClearStatusMsg struct {
	seq int
}

// AppErrorMsg reports a failure from a command running off the update loop.
type AppErrorMsg struct {
	Err error
}

// DismissNotificationMsg removes the transient notification with ID.
type DismissNotificationMsg struct {
	ID string

	fromScheduler bool
}

// ReloadMsg re-reads every collection from the store.
type ReloadMsg struct{}

func NewModel(service *tracker.Service) Model {
	return NewModelWithConfig(service, nil, nil, config.DefaultRuntimeConfig())
}

func NewModelWithScheduler(service *tracker.Service, engine *scheduler.Engine) Model {
	return NewModelWithConfig(service, engine, nil, config.DefaultRuntimeConfig())
}

func NewModelWithConfig(service *tracker.Service, engine *scheduler.Engine, notifier DesktopNotifier, cfg config.RuntimeConfig) Model {
	m := Model{
		CurrentView:    ViewTasks,
		service:        service,
		Scheduler:      engine,
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		notifyDelay:    cfg.NotificationDelay(),
		Keys: GlobalKeyMap{
			Tasks:     "1",
			Plans:     "2",
			Completed: "3",
			Help:      "?",
			Quit:      "q",
		},
	}
	if notifier != nil {
		m.notifier = notifier
	}
	m.initBubbleComponents()
	m.switchView(ViewTasks)
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.Placeholder = "e.g., Finish project report"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 42

	m.planTitleInput = textinput.New()
	m.planTitleInput.Prompt = "title> "
	m.planTitleInput.Placeholder = "Plan title (e.g., Weekly Goals)"
	m.planTitleInput.CharLimit = 256
	m.planTitleInput.Width = 42

	m.planDescArea = textarea.New()
	m.planDescArea.Placeholder = "Describe your plan in detail..."
	m.planDescArea.ShowLineNumbers = false
	m.planDescArea.SetWidth(54)
	m.planDescArea.SetHeight(4)

	m.editTitleInput = textinput.New()
	m.editTitleInput.Prompt = "title> "
	m.editTitleInput.CharLimit = 256
	m.editTitleInput.Width = 42

	m.editDescArea = textarea.New()
	m.editDescArea.ShowLineNumbers = false
	m.editDescArea.SetWidth(54)
	m.editDescArea.SetHeight(4)

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.detailViewport = viewport.New(54, 12)
}

// switchView replaces the current view and rebuilds its state from the
// store. Nothing from the previous view survives.
func (m *Model) switchView(v View) {
	m.CurrentView = v
	m.Tasks.Capturing = false
	m.Plans.FormActive = false
	m.Plans.Editor = PlanEditorState{}
	m.taskInput.Blur()
	m.planTitleInput.Blur()
	m.planDescArea.Blur()
	m.editTitleInput.Blur()
	m.editDescArea.Blur()

	switch v {
	case ViewTasks:
		m.Tasks.Cursor = 0
		m.taskInput.SetValue("")
		m.startTaskCapture()
	case ViewPlans:
		m.Plans.Cursor = 0
		m.planTitleInput.SetValue("")
		m.planDescArea.Reset()
		m.Plans.FormField = PlanFieldTitle
	case ViewCompleted:
		m.Completed.Cursor = 0
	}
	m.reload()
}

func (m *Model) reload() {
	if m.service == nil {
		return
	}
	ctx := context.Background()
	m.Tasks.Items = m.service.ActiveTasks(ctx)
	m.Plans.Items = m.service.Plans(ctx)
	m.Completed.Items = m.service.CompletedTasks(ctx)
	m.Tasks.Cursor = clampCursor(m.Tasks.Cursor, len(m.Tasks.Items))
	m.Plans.Cursor = clampCursor(m.Plans.Cursor, len(m.Plans.Items))
	m.Completed.Cursor = clampCursor(m.Completed.Cursor, len(m.Completed.Items))
}

func isKnownView(v View) bool {
	for _, known := range allViews {
		if v == known {
			return true
		}
	}
	return false
}
