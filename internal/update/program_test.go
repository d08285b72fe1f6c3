package update

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/sandeepkv93/tasktrack/internal/storage"
)

func TestProgramAddAndCompleteTask(t *testing.T) {
	svc := newService(t, storage.NewMemoryStore())
	tm := teatest.NewTestModel(t, NewModel(svc), teatest.WithInitialTermSize(160, 40))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("My Tasks"))
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Type("buy milk")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Task completed!"))
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	if !ok || !final.Quitting {
		t.Fatalf("unexpected final model: %#v", tm.FinalModel(t))
	}
	ctx := context.Background()
	if got := svc.ActiveTasks(ctx); len(got) != 0 {
		t.Fatalf("expected no active tasks, got %+v", got)
	}
	completed := svc.CompletedTasks(ctx)
	if len(completed) != 1 || completed[0].Text != "buy milk" {
		t.Fatalf("unexpected completed tasks: %+v", completed)
	}
}
