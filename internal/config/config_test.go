package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	cfg := DefaultRuntimeConfig()
	if cfg.StoreDriver != "sqlite3" || cfg.NotificationSeconds != 3 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StorePath != filepath.Join("/data", "tasktrack", "tasktrack.db") {
		t.Fatalf("unexpected store path default: %q", cfg.StorePath)
	}
	if cfg.NotificationDelay() != 3*time.Second || cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TASKTRACK_STORE_DRIVER", "FILE")
	t.Setenv("TASKTRACK_STORE_PATH", "state/custom.json")
	t.Setenv("TASKTRACK_NOTIFICATION_SECONDS", "5")
	t.Setenv("TASKTRACK_DESKTOP_NOTIFICATIONS", "yes")
	t.Setenv("TASKTRACK_LOG_FILE", "debug.log")
	t.Setenv("TASKTRACK_SCHEDULER_BUFFER", "128")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.StoreDriver != "file" || cfg.StorePath != "state/custom.json" {
		t.Fatalf("unexpected store config: %+v", cfg)
	}
	if cfg.NotificationDelay() != 5*time.Second || !cfg.DesktopNotifications {
		t.Fatalf("unexpected notification config: %+v", cfg)
	}
	if cfg.LogPath != "debug.log" || cfg.SchedulerBuffer != 128 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("TASKTRACK_NOTIFICATION_SECONDS", "soon")
	t.Setenv("TASKTRACK_DESKTOP_NOTIFICATIONS", "maybe")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.NotificationSeconds != 3 || cfg.DesktopNotifications {
		t.Fatalf("invalid env values should be ignored: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "store_driver: sqlite\nstore_path: /tmp/tt.db\nnotification_seconds: 7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadFile(DefaultRuntimeConfig(), path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.StoreDriver != "sqlite" || cfg.StorePath != "/tmp/tt.db" || cfg.NotificationSeconds != 7 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 {
		t.Fatalf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestLoadFileMissingAndInvalid(t *testing.T) {
	base := DefaultRuntimeConfig()
	cfg, err := LoadFile(base, filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil || cfg != base {
		t.Fatalf("missing file should return base, got %+v err=%v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("store_driver: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(base, path); err == nil {
		t.Fatal("expected yaml error")
	}
}
