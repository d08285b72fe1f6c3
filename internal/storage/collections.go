package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/sandeepkv93/tasktrack/internal/model"
)

var ErrSaveFailed = errors.New("storage: save failed")

// Collections reads and writes the three persisted collections. Reads never
// fail: a missing key, a broken value or an unreachable store all come back
// as an empty collection and the cause is logged. Writes report failures
// wrapped in ErrSaveFailed.
type Collections struct {
	store  Store
	logger *log.Logger
}

func NewCollections(store Store, logger *log.Logger) *Collections {
	if logger == nil {
		logger = log.Default()
	}
	return &Collections{store: store, logger: logger}
}

func (c *Collections) Store() Store {
	return c.store
}

func (c *Collections) Plans(ctx context.Context) []model.Plan {
	return loadCollection[model.Plan](ctx, c, PlansKey, "plans")
}

func (c *Collections) SavePlans(ctx context.Context, plans []model.Plan) error {
	return saveCollection(ctx, c, PlansKey, "plans", plans)
}

func (c *Collections) CompletedTasks(ctx context.Context) []model.CompletedTask {
	return loadCollection[model.CompletedTask](ctx, c, CompletedTasksKey, "completed tasks")
}

func (c *Collections) SaveCompletedTasks(ctx context.Context, tasks []model.CompletedTask) error {
	return saveCollection(ctx, c, CompletedTasksKey, "completed tasks", tasks)
}

func (c *Collections) ActiveTasks(ctx context.Context) []model.ActiveTask {
	return loadCollection[model.ActiveTask](ctx, c, ActiveTasksKey, "active tasks")
}

func (c *Collections) SaveActiveTasks(ctx context.Context, tasks []model.ActiveTask) error {
	return saveCollection(ctx, c, ActiveTasksKey, "active tasks", tasks)
}

// Clear removes every collection key. Keys that were never written are skipped.
func (c *Collections) Clear(ctx context.Context) error {
	for _, key := range []string{PlansKey, CompletedTasksKey, ActiveTasksKey} {
		if err := c.store.RemoveItem(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: remove %s: %v", ErrSaveFailed, key, err)
		}
	}
	return nil
}

func loadCollection[T any](ctx context.Context, c *Collections, key, what string) []T {
	raw, ok, err := c.store.GetItem(ctx, key)
	if err != nil {
		c.logger.Printf("storage: load %s: %v", what, err)
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		c.logger.Printf("storage: decode %s: %v", what, err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func saveCollection[T any](ctx context.Context, c *Collections, key, what string, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		c.logger.Printf("storage: encode %s: %v", what, err)
		return fmt.Errorf("%w: encode %s: %v", ErrSaveFailed, what, err)
	}
	if err := c.store.SetItem(ctx, key, string(payload)); err != nil {
		c.logger.Printf("storage: save %s: %v", what, err)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, what, err)
	}
	return nil
}
