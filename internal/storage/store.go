package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrUnknownDriver = errors.New("storage: unknown driver")
)

// Fixed keys of the persisted collections.
const (
	PlansKey          = "taskTrackerPlans"
	CompletedTasksKey = "taskTrackerCompletedTasks"
	ActiveTasksKey    = "taskTrackerActiveTasks"
)

const (
	DriverSQLite3 = "sqlite3"
	DriverSQLite  = "sqlite"
	DriverFile    = "file"
	DriverMemory  = "memory"
)

// Store is a flat string key-value store. Every collection lives under a
// single key as one serialized value.
type Store interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// Open returns the Store for driver. SQLite drivers are migrated before use.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite3, "":
		return OpenSQLite(DriverSQLite3, path)
	case DriverSQLite:
		return OpenSQLite(DriverSQLite, path)
	case DriverFile:
		return NewFileStore(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
