package cmd

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sandeepkv93/tasktrack/internal/model"
	"github.com/sandeepkv93/tasktrack/internal/update"
	"github.com/sandeepkv93/tasktrack/internal/views"
)

// isolate keeps the user's config file and environment out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		"TASKTRACK_STORE_DRIVER",
		"TASKTRACK_STORE_PATH",
		"TASKTRACK_NOTIFICATION_SECONDS",
		"TASKTRACK_DESKTOP_NOTIFICATIONS",
		"TASKTRACK_LOG_FILE",
		"TASKTRACK_SCHEDULER_BUFFER",
	} {
		t.Setenv(name, "")
	}
}

func run(t *testing.T, opts *Options, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr, opts)
	return stdout.String(), stderr.String(), code
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, code := run(t, nil, args...)
	if code != 0 {
		t.Fatalf("%v: exit %d: %s", args, code, errOut)
	}
	return out
}

func storeArgs(t *testing.T) []string {
	t.Helper()
	return []string{"--driver", "sqlite", "--store", filepath.Join(t.TempDir(), "tasktrack.db")}
}

func with(base []string, args ...string) []string {
	out := append([]string{}, base...)
	return append(out, args...)
}

func TestHelpFlag(t *testing.T) {
	isolate(t)
	out := mustRun(t, "--help")
	if !strings.Contains(out, "tasktrack") || !strings.Contains(out, "Usage:") {
		t.Fatalf("unexpected help output: %s", out)
	}
	for _, sub := range []string{"tasks", "plans", "completed", "reset"} {
		if !strings.Contains(out, sub) {
			t.Fatalf("help should list %q: %s", sub, out)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	out := mustRun(t, "--version")
	if !strings.Contains(out, Version) {
		t.Fatalf("version output should contain %q, got %s", Version, out)
	}
}

func TestTasksLifecycle(t *testing.T) {
	isolate(t)
	base := storeArgs(t)

	out := mustRun(t, with(base, "tasks", "list")...)
	if !strings.Contains(out, views.EmptyTasksText) {
		t.Fatalf("expected empty task list, got %q", out)
	}

	out = mustRun(t, with(base, "tasks", "add", "buy", "milk")...)
	if !strings.Contains(out, "buy milk") {
		t.Fatalf("unexpected add output: %q", out)
	}

	var active []model.ActiveTask
	if err := json.Unmarshal([]byte(mustRun(t, with(base, "--json", "tasks", "list")...)), &active); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	if len(active) != 1 || active[0].Text != "buy milk" {
		t.Fatalf("unexpected active tasks: %+v", active)
	}

	mustRun(t, with(base, "tasks", "complete", active[0].ID)...)
	out = mustRun(t, with(base, "completed", "list")...)
	if !strings.Contains(out, "Total completed: 1") || !strings.Contains(out, "buy milk") {
		t.Fatalf("unexpected completed list: %q", out)
	}

	var completed []model.CompletedTask
	if err := json.Unmarshal([]byte(mustRun(t, with(base, "--json", "completed", "list")...)), &completed); err != nil {
		t.Fatalf("decode completed: %v", err)
	}
	mustRun(t, with(base, "completed", "restore", completed[0].ID)...)
	out = mustRun(t, with(base, "tasks", "list")...)
	if !strings.Contains(out, "buy milk") {
		t.Fatalf("restored task should be active: %q", out)
	}
	out = mustRun(t, with(base, "completed", "list")...)
	if !strings.Contains(out, views.EmptyCompletedText) {
		t.Fatalf("expected empty completed list: %q", out)
	}
}

func TestPurgeCompletedTask(t *testing.T) {
	isolate(t)
	base := storeArgs(t)
	mustRun(t, with(base, "tasks", "add", "ephemeral chore")...)

	var active []model.ActiveTask
	if err := json.Unmarshal([]byte(mustRun(t, with(base, "--json", "tasks", "list")...)), &active); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	mustRun(t, with(base, "tasks", "complete", active[0].ID)...)

	var completed []model.CompletedTask
	if err := json.Unmarshal([]byte(mustRun(t, with(base, "--json", "completed", "list")...)), &completed); err != nil {
		t.Fatalf("decode completed: %v", err)
	}
	mustRun(t, with(base, "completed", "purge", completed[0].ID)...)

	out := mustRun(t, with(base, "completed", "list")...)
	if !strings.Contains(out, "Total completed: 0") {
		t.Fatalf("expected purged list, got %q", out)
	}
	out = mustRun(t, with(base, "tasks", "list")...)
	if !strings.Contains(out, views.EmptyTasksText) {
		t.Fatalf("purge must not restore the task: %q", out)
	}
}

func TestPlansLifecycle(t *testing.T) {
	isolate(t)
	base := storeArgs(t)

	mustRun(t, with(base, "plans", "add", "Weekly goals", "Ship the release")...)

	var plans []model.Plan
	if err := json.Unmarshal([]byte(mustRun(t, with(base, "--json", "plans", "list")...)), &plans); err != nil {
		t.Fatalf("decode plans: %v", err)
	}
	if len(plans) != 1 || plans[0].Status != model.PlanStatusActive {
		t.Fatalf("unexpected plans: %+v", plans)
	}
	id := strconv.FormatInt(plans[0].ID, 10)

	mustRun(t, with(base, "plans", "edit", id, "Monthly goals", "Ship two releases")...)
	out := mustRun(t, with(base, "plans", "list")...)
	if !strings.Contains(out, "Monthly goals") || !strings.Contains(out, "Ship two releases") {
		t.Fatalf("edit not applied: %q", out)
	}

	_, errOut, code := run(t, nil, with(base, "plans", "edit", id, " ", "x")...)
	if code == 0 || !strings.Contains(errOut, "Error:") {
		t.Fatalf("blank title should fail, got exit %d", code)
	}

	mustRun(t, with(base, "plans", "delete", id)...)
	out = mustRun(t, with(base, "plans", "list")...)
	if !strings.Contains(out, views.EmptyPlansText) {
		t.Fatalf("expected empty plans text, got %q", out)
	}
}

func TestUnknownIDsFail(t *testing.T) {
	isolate(t)
	base := storeArgs(t)

	_, errOut, code := run(t, nil, with(base, "tasks", "complete", "missing")...)
	if code != 1 || !strings.Contains(errOut, "task not found") {
		t.Fatalf("expected task not found, got exit %d: %s", code, errOut)
	}
	_, errOut, code = run(t, nil, with(base, "plans", "delete", "abc")...)
	if code != 1 || !strings.Contains(errOut, "invalid plan id") {
		t.Fatalf("expected invalid plan id, got exit %d: %s", code, errOut)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	isolate(t)
	base := storeArgs(t)
	mustRun(t, with(base, "tasks", "add", "keep me")...)

	_, errOut, code := run(t, nil, with(base, "reset")...)
	if code != 1 || !strings.Contains(errOut, "--yes") {
		t.Fatalf("reset without --yes should fail, got exit %d: %s", code, errOut)
	}
	if out := mustRun(t, with(base, "tasks", "list")...); !strings.Contains(out, "keep me") {
		t.Fatalf("data should survive an unconfirmed reset: %q", out)
	}

	mustRun(t, with(base, "reset", "--yes")...)
	if out := mustRun(t, with(base, "tasks", "list")...); !strings.Contains(out, views.EmptyTasksText) {
		t.Fatalf("expected empty list after reset: %q", out)
	}
}

func TestConfigFileSelectsStore(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "store_driver: file\nstore_path: " + statePath + "\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	mustRun(t, "--config", cfgPath, "tasks", "add", "from config")
	raw, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatalf("expected file store at %s: %v", statePath, err)
	}
	if !strings.Contains(string(raw), "taskTrackerActiveTasks") {
		t.Fatalf("unexpected file store contents: %s", raw)
	}
}

func TestEnvOverridesConfigAndFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("TASKTRACK_STORE_DRIVER", "file")
	t.Setenv("TASKTRACK_STORE_PATH", filepath.Join(dir, "env.json"))

	mustRun(t, "tasks", "add", "env task")
	if _, err := os.Stat(filepath.Join(dir, "env.json")); err != nil {
		t.Fatalf("env store not used: %v", err)
	}

	flagPath := filepath.Join(dir, "flag.json")
	mustRun(t, "--store", flagPath, "tasks", "add", "flag task")
	if _, err := os.Stat(flagPath); err != nil {
		t.Fatalf("flag store not used: %v", err)
	}
}

func TestEphemeralDoesNotPersist(t *testing.T) {
	isolate(t)
	base := with(storeArgs(t), "--ephemeral")
	mustRun(t, with(base, "tasks", "add", "gone soon")...)
	if out := mustRun(t, with(base, "tasks", "list")...); !strings.Contains(out, views.EmptyTasksText) {
		t.Fatalf("ephemeral store should start empty each run: %q", out)
	}
}

func TestUnknownDriver(t *testing.T) {
	isolate(t)
	_, errOut, code := run(t, nil, "--driver", "postgres", "tasks", "list")
	if code != 1 || !strings.Contains(errOut, "unknown driver") {
		t.Fatalf("expected unknown driver error, got exit %d: %s", code, errOut)
	}
}

func TestRootCommandStartsTUI(t *testing.T) {
	isolate(t)
	var got update.Model
	called := false
	opts := &Options{RunTUI: func(m update.Model) error {
		called = true
		got = m
		return nil
	}}
	_, errOut, code := run(t, opts, storeArgs(t)...)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !called || got.CurrentView != update.ViewTasks || got.Scheduler == nil {
		t.Fatalf("unexpected model handed to the TUI: called=%v view=%q", called, got.CurrentView)
	}
}

func TestLogFileReceivesStoreMessages(t *testing.T) {
	isolate(t)
	logPath := filepath.Join(t.TempDir(), "debug.log")
	t.Setenv("TASKTRACK_LOG_FILE", logPath)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	})

	mustRun(t, with(storeArgs(t), "tasks", "list")...)
	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "opened sqlite store") {
		t.Fatalf("unexpected log contents: %s", raw)
	}
}

func TestBrokenCollectionIsLoggedToStderr(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tasktrack.json")
	if err := os.WriteFile(path, []byte(`{"taskTrackerPlans":"[{not json"}`), 0o644); err != nil {
		t.Fatalf("write store: %v", err)
	}

	out, errOut, code := run(t, nil, "--driver", "file", "--store", path, "plans", "list")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, views.EmptyPlansText) {
		t.Fatalf("broken plans should read as empty: %q", out)
	}
	if !strings.Contains(errOut, "storage: decode plans") {
		t.Fatalf("decode failure should be logged to stderr, got %q", errOut)
	}
}

func TestRootCommandNeedsTerminal(t *testing.T) {
	isolate(t)
	root := NewTaskTrack(&bytes.Buffer{}, &bytes.Buffer{}, nil)
	root.SetArgs(storeArgs(t))
	root.SetIn(strings.NewReader(""))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err != errNoTerminal {
		t.Fatalf("expected errNoTerminal, got %v", err)
	}
}
