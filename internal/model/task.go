package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrEmptyTaskText = errors.New("model: task text is required")

// ActiveTask is a task that has not been completed yet.
type ActiveTask struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompletedTask is the record left behind when an active task is marked done.
type CompletedTask struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	CompletedAt time.Time `json:"completedAt"`
}

func NewActiveTask(id, text string, now time.Time) (ActiveTask, error) {
	task := ActiveTask{
		ID:        id,
		Text:      strings.TrimSpace(text),
		CreatedAt: now.UTC(),
	}
	if err := task.Validate(); err != nil {
		return ActiveTask{}, err
	}
	return task, nil
}

func (t ActiveTask) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyTaskText
	}
	return nil
}

// Complete builds the completed record for t. The caller supplies the new id.
func (t ActiveTask) Complete(id string, now time.Time) CompletedTask {
	return CompletedTask{
		ID:          id,
		Text:        strings.TrimSpace(t.Text),
		CompletedAt: now.UTC(),
	}
}

func (c CompletedTask) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: completed task id is required")
	}
	if strings.TrimSpace(c.Text) == "" {
		return ErrEmptyTaskText
	}
	if c.CompletedAt.IsZero() {
		return errors.New("model: completed_at is required")
	}
	return nil
}

// Restore turns a completed record back into an active task.
func (c CompletedTask) Restore(id string, now time.Time) ActiveTask {
	return ActiveTask{
		ID:        id,
		Text:      strings.TrimSpace(c.Text),
		CreatedAt: now.UTC(),
	}
}

// SortCompletedDesc returns a copy of tasks ordered newest first. Ties keep
// their stored order.
func SortCompletedDesc(tasks []CompletedTask) []CompletedTask {
	out := make([]CompletedTask, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out
}
