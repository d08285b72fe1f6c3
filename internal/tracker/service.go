// Package tracker holds every operation that changes the persisted
// collections. The terminal UI and the command line both go through it.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/tasktrack/internal/model"
	"github.com/sandeepkv93/tasktrack/internal/storage"
)

var (
	ErrTaskNotFound = errors.New("tracker: task not found")
	ErrPlanNotFound = errors.New("tracker: plan not found")
)

type Service struct {
	store *storage.Collections
	now   func() time.Time
	ids   *model.IDGenerator
}

type Option func(*Service)

// WithClock replaces time.Now for timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(store *storage.Collections, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = model.NewIDGenerator(s.now)
	return s
}

func (s *Service) ActiveTasks(ctx context.Context) []model.ActiveTask {
	return s.store.ActiveTasks(ctx)
}

func (s *Service) Plans(ctx context.Context) []model.Plan {
	return s.store.Plans(ctx)
}

// CompletedTasks returns the completed collection newest first.
func (s *Service) CompletedTasks(ctx context.Context) []model.CompletedTask {
	return model.SortCompletedDesc(s.store.CompletedTasks(ctx))
}

func (s *Service) AddTask(ctx context.Context, text string) (model.ActiveTask, error) {
	task, err := model.NewActiveTask(s.ids.NextString(), text, s.now())
	if err != nil {
		return model.ActiveTask{}, err
	}
	tasks := append(s.store.ActiveTasks(ctx), task)
	if err := s.store.SaveActiveTasks(ctx, tasks); err != nil {
		return task, err
	}
	return task, nil
}

// CompleteTask records the task in the completed collection first and only
// then drops it from the active one, so a failed write never loses the task.
func (s *Service) CompleteTask(ctx context.Context, id string) (model.CompletedTask, error) {
	active := s.store.ActiveTasks(ctx)
	idx := indexOfTask(active, id)
	if idx < 0 {
		return model.CompletedTask{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	done := active[idx].Complete(s.ids.NextString(), s.now())

	completed := append(s.store.CompletedTasks(ctx), done)
	if err := s.store.SaveCompletedTasks(ctx, completed); err != nil {
		return done, err
	}
	remaining := append(active[:idx:idx], active[idx+1:]...)
	if err := s.store.SaveActiveTasks(ctx, remaining); err != nil {
		return done, err
	}
	return done, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	active := s.store.ActiveTasks(ctx)
	idx := indexOfTask(active, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	remaining := append(active[:idx:idx], active[idx+1:]...)
	return s.store.SaveActiveTasks(ctx, remaining)
}

func (s *Service) CreatePlan(ctx context.Context, title, description string) (model.Plan, error) {
	plan, err := model.NewPlan(s.ids.Next(), title, description, s.now())
	if err != nil {
		return model.Plan{}, err
	}
	plans := append(s.store.Plans(ctx), plan)
	if err := s.store.SavePlans(ctx, plans); err != nil {
		return plan, err
	}
	return plan, nil
}

func (s *Service) EditPlan(ctx context.Context, id int64, title, description string) (model.Plan, error) {
	plans := s.store.Plans(ctx)
	idx := indexOfPlan(plans, id)
	if idx < 0 {
		return model.Plan{}, fmt.Errorf("%w: %d", ErrPlanNotFound, id)
	}
	if err := plans[idx].Edit(title, description, s.now()); err != nil {
		return plans[idx], err
	}
	if err := s.store.SavePlans(ctx, plans); err != nil {
		return plans[idx], err
	}
	return plans[idx], nil
}

func (s *Service) DeletePlan(ctx context.Context, id int64) error {
	plans := s.store.Plans(ctx)
	kept := make([]model.Plan, 0, len(plans))
	for _, p := range plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(plans) {
		return fmt.Errorf("%w: %d", ErrPlanNotFound, id)
	}
	return s.store.SavePlans(ctx, kept)
}

// RestoreTask moves a completed task back into the active collection under
// a fresh id.
func (s *Service) RestoreTask(ctx context.Context, id string) (model.ActiveTask, error) {
	completed := s.store.CompletedTasks(ctx)
	idx := indexOfCompleted(completed, id)
	if idx < 0 {
		return model.ActiveTask{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	restored := completed[idx].Restore(s.ids.NextString(), s.now())

	remaining := append(completed[:idx:idx], completed[idx+1:]...)
	if err := s.store.SaveCompletedTasks(ctx, remaining); err != nil {
		return restored, err
	}
	active := append(s.store.ActiveTasks(ctx), restored)
	if err := s.store.SaveActiveTasks(ctx, active); err != nil {
		return restored, err
	}
	return restored, nil
}

func (s *Service) PurgeTask(ctx context.Context, id string) error {
	completed := s.store.CompletedTasks(ctx)
	idx := indexOfCompleted(completed, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	remaining := append(completed[:idx:idx], completed[idx+1:]...)
	return s.store.SaveCompletedTasks(ctx, remaining)
}

// Reset drops all three collections.
func (s *Service) Reset(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func indexOfTask(tasks []model.ActiveTask, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func indexOfCompleted(tasks []model.CompletedTask, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func indexOfPlan(plans []model.Plan, id int64) int {
	for i, p := range plans {
		if p.ID == id {
			return i
		}
	}
	return -1
}
