package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func setupStore(t *testing.T, driver string) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tasktrack-test.db")
	store, err := OpenSQLite(driver, dbPath)
	if err != nil {
		t.Fatalf("open sqlite (%s): %v", driver, err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreItemLifecycle(t *testing.T) {
	for _, driver := range []string{DriverSQLite3, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			store := setupStore(t, driver)
			ctx := context.Background()

			if _, ok, err := store.GetItem(ctx, PlansKey); err != nil || ok {
				t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
			}

			if err := store.SetItem(ctx, PlansKey, `[]`); err != nil {
				t.Fatalf("set item: %v", err)
			}
			if err := store.SetItem(ctx, PlansKey, `[{"id":1}]`); err != nil {
				t.Fatalf("overwrite item: %v", err)
			}
			got, ok, err := store.GetItem(ctx, PlansKey)
			if err != nil || !ok {
				t.Fatalf("get item: ok=%v err=%v", ok, err)
			}
			if got != `[{"id":1}]` {
				t.Fatalf("unexpected value: %q", got)
			}

			if err := store.RemoveItem(ctx, PlansKey); err != nil {
				t.Fatalf("remove item: %v", err)
			}
			if err := store.RemoveItem(ctx, PlansKey); err != ErrNotFound {
				t.Fatalf("expected ErrNotFound, got: %v", err)
			}
		})
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "store.db")
	store, err := OpenSQLite(DriverSQLite3, dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.SetItem(context.Background(), CompletedTasksKey, `[{"id":"1"}]`); err != nil {
		t.Fatalf("set item: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(DriverSQLite3, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, ok, err := reopened.GetItem(context.Background(), CompletedTasksKey)
	if err != nil || !ok || got != `[{"id":"1"}]` {
		t.Fatalf("unexpected value after reopen: %q ok=%v err=%v", got, ok, err)
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		driver string
		path   string
	}{
		{DriverSQLite3, filepath.Join(dir, "a.db")},
		{DriverSQLite, filepath.Join(dir, "b.db")},
		{DriverFile, filepath.Join(dir, "c.json")},
		{DriverMemory, ""},
	}
	for _, tc := range cases {
		store, err := Open(tc.driver, tc.path)
		if err != nil {
			t.Fatalf("open %s: %v", tc.driver, err)
		}
		if err := store.SetItem(context.Background(), "k", "v"); err != nil {
			t.Fatalf("%s set: %v", tc.driver, err)
		}
		_ = store.Close()
	}

	if _, err := Open("postgres", ""); err == nil {
		t.Fatal("expected unknown driver error")
	}
}
