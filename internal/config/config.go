package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	StoreDriver          string `yaml:"store_driver"`
	StorePath            string `yaml:"store_path"`
	NotificationSeconds  int    `yaml:"notification_seconds"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	LogPath              string `yaml:"log_path"`
	SchedulerBuffer      int    `yaml:"scheduler_buffer"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		StoreDriver:          "sqlite3",
		StorePath:            defaultStorePath(),
		NotificationSeconds:  3,
		DesktopNotifications: false,
		LogPath:              "",
		SchedulerBuffer:      64,
	}
}

// NotificationDelay is how long a transient notification stays on screen.
func (c RuntimeConfig) NotificationDelay() time.Duration {
	if c.NotificationSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.NotificationSeconds) * time.Second
}

// LoadFile overlays the YAML file at path onto base. A missing file is not
// an error; base is returned unchanged.
func LoadFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(expandHome(trimmed))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("invalid YAML in config file: %w", err)
	}
	cfg.StorePath = expandHome(cfg.StorePath)
	cfg.LogPath = expandHome(cfg.LogPath)
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TASKTRACK_STORE_DRIVER")); v != "" {
		cfg.StoreDriver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("TASKTRACK_STORE_PATH")); v != "" {
		cfg.StorePath = expandHome(v)
	}
	if v, ok := getEnvInt("TASKTRACK_NOTIFICATION_SECONDS"); ok && v > 0 {
		cfg.NotificationSeconds = v
	}
	if v, ok := getEnvBool("TASKTRACK_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKTRACK_LOG_FILE")); v != "" {
		cfg.LogPath = expandHome(v)
	}
	if v, ok := getEnvInt("TASKTRACK_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

// DefaultConfigPath is $XDG_CONFIG_HOME/tasktrack/config.yaml, falling back
// to the user config dir.
func DefaultConfigPath() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "tasktrack", "config.yaml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".tasktrack.yaml"
	}
	return filepath.Join(dir, "tasktrack", "config.yaml")
}

func defaultStorePath() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "tasktrack", "tasktrack.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tasktrack.db"
	}
	return filepath.Join(home, ".local", "share", "tasktrack", "tasktrack.db")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
