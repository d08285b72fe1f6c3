package update

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/tasktrack/internal/scheduler"
)

const dismissKind = "dismiss"

// toast shows body until the notification delay elapses. Several toasts may
// be on screen at once; each is dismissed on its own timer.
func (m *Model) toast(body string) tea.Cmd {
	return m.notify("tasktrack", body, "info")
}

func (m *Model) notify(title, body, level string) tea.Cmd {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	n := Notification{
		ID:    uuid.NewString(),
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	dismiss := m.scheduleDismiss(n.ID)
	if !m.DesktopEnabled || m.notifier == nil {
		return dismiss
	}
	return tea.Batch(sendDesktopCmd(m.notifier, n), dismiss)
}

// sendDesktopCmd mirrors n to the desktop off the update loop. A failure is
// logged and shown on the status line.
func sendDesktopCmd(notifier DesktopNotifier, n Notification) tea.Cmd {
	return func() tea.Msg {
		if err := notifier.Send(n); err != nil {
			log.Printf("desktop notification %s: %v", n.ID, err)
			return AppErrorMsg{Err: fmt.Errorf("desktop notification failed: %w", err)}
		}
		return nil
	}
}

// setStatus shows text on the status line until the notification delay
// passes or a newer status replaces it.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: isError}
	seq := m.statusSeq
	return tea.Tick(m.displayDelay(), func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}

func (m *Model) displayDelay() time.Duration {
	if m.notifyDelay <= 0 {
		return 3 * time.Second
	}
	return m.notifyDelay
}

func (m *Model) scheduleDismiss(id string) tea.Cmd {
	delay := m.displayDelay()
	if m.Scheduler != nil {
		err := m.Scheduler.After(delay, scheduler.Event{ID: id, Kind: dismissKind})
		if err == nil {
			return nil
		}
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return DismissNotificationMsg{ID: id}
	})
}

// dismiss removes the toast with id. When cancel is set its pending
// scheduler event is dropped too, so it never fires for a missing toast.
func (m *Model) dismiss(id string, cancel bool) {
	if cancel && m.Scheduler != nil {
		m.Scheduler.Cancel(id)
	}
	for i, n := range m.Notifications {
		if n.ID == id {
			m.Notifications = append(m.Notifications[:i:i], m.Notifications[i+1:]...)
			return
		}
	}
}

// waitForDismissCmd blocks on the scheduler channel and turns the next
// expiry into a DismissNotificationMsg.
func waitForDismissCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DismissNotificationMsg{ID: ev.ID, fromScheduler: true}
	}
}
