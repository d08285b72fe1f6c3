package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/tasktrack/internal/config"
	"github.com/sandeepkv93/tasktrack/internal/scheduler"
	"github.com/sandeepkv93/tasktrack/internal/storage"
	"github.com/sandeepkv93/tasktrack/internal/tracker"
	"github.com/sandeepkv93/tasktrack/internal/update"
)

// Version is set at build time
var Version = "dev"

// Options carries test hooks; the zero value runs the real program.
type Options struct {
	// Runtime, when set, replaces the defaults before the config file,
	// environment and flags are applied.
	Runtime *config.RuntimeConfig
	// RunTUI replaces the bubbletea program started by the root command.
	RunTUI func(update.Model) error
}

// Execute runs the CLI with the given arguments and IO writers and returns
// the process exit code.
func Execute(args []string, stdout, stderr io.Writer, opts *Options) int {
	root := NewTaskTrack(stdout, stderr, opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewTaskTrack creates the root command with injectable IO.
func NewTaskTrack(stdout, stderr io.Writer, opts *Options) *cobra.Command {
	if opts == nil {
		opts = &Options{}
	}

	root := &cobra.Command{
		Use:     "tasktrack",
		Short:   "Track tasks, plans and completed work from the terminal",
		Long:    "tasktrack keeps a task list, a set of plans and a history of completed tasks. Run it without arguments for the interactive view.",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, stdout, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to the YAML config file (default $XDG_CONFIG_HOME/tasktrack/config.yaml)")
	root.PersistentFlags().String("store", "", "Path to the data store")
	root.PersistentFlags().String("driver", "", "Store driver: sqlite3, sqlite, file or memory")
	root.PersistentFlags().Bool("ephemeral", false, "Keep everything in memory for this run")
	root.PersistentFlags().Bool("json", false, "Output lists in JSON format")

	root.AddCommand(newTasksCmd(stdout, opts))
	root.AddCommand(newPlansCmd(stdout, opts))
	root.AddCommand(newCompletedCmd(stdout, opts))
	root.AddCommand(newResetCmd(stdout, opts))
	return root
}

// loadRuntime layers defaults, the config file, TASKTRACK_* variables and
// finally the command line flags.
func loadRuntime(cmd *cobra.Command, opts *Options) (config.RuntimeConfig, error) {
	base := config.DefaultRuntimeConfig()
	if opts.Runtime != nil {
		base = *opts.Runtime
	}

	path, _ := cmd.Flags().GetString("config")
	if strings.TrimSpace(path) == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadFile(base, path)
	if err != nil {
		return cfg, err
	}
	cfg = config.RuntimeConfigFromEnv(cfg)

	if v, _ := cmd.Flags().GetString("store"); strings.TrimSpace(v) != "" {
		cfg.StorePath = v
	}
	if v, _ := cmd.Flags().GetString("driver"); strings.TrimSpace(v) != "" {
		cfg.StoreDriver = strings.ToLower(v)
	}
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		cfg.StoreDriver = storage.DriverMemory
	}
	return cfg, nil
}

// session is an opened store plus the service on top of it.
type session struct {
	cfg     config.RuntimeConfig
	service *tracker.Service
	store   storage.Store
	logFile *os.File
}

func (s *session) Close() error {
	err := s.store.Close()
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
	return err
}

// openSession loads the config and opens the store. Without a log file,
// subcommands log to stderr; the interactive view owns the terminal, so
// there it discards log output instead.
func openSession(cmd *cobra.Command, opts *Options, interactive bool) (*session, error) {
	cfg, err := loadRuntime(cmd, opts)
	if err != nil {
		return nil, err
	}

	logger := log.New(cmd.ErrOrStderr(), "tasktrack: ", 0)
	if interactive {
		logger = log.New(io.Discard, "", 0)
	}
	var logFile *os.File
	if cfg.LogPath != "" {
		logFile, err = tea.LogToFile(cfg.LogPath, "tasktrack")
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger = log.Default()
	}

	store, err := storage.Open(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}
	if logFile != nil {
		logger.Printf("opened %s store at %s", cfg.StoreDriver, cfg.StorePath)
	}

	return &session{
		cfg:     cfg,
		service: tracker.New(storage.NewCollections(store, logger)),
		store:   store,
		logFile: logFile,
	}, nil
}

var errNoTerminal = errors.New("the interactive view needs a terminal; use the tasks, plans or completed subcommands instead")

func runTUI(cmd *cobra.Command, stdout io.Writer, opts *Options) error {
	if opts.RunTUI == nil && !isTerminal(cmd.InOrStdin()) {
		return errNoTerminal
	}
	s, err := openSession(cmd, opts, true)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	if s.logFile == nil {
		prev := log.Writer()
		log.SetOutput(io.Discard)
		defer log.SetOutput(prev)
	}

	engine := scheduler.NewEngine(s.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier
	if s.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModelWithConfig(s.service, engine, notifier, s.cfg)

	if opts.RunTUI != nil {
		return opts.RunTUI(m)
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tasktrack failed: %w", err)
	}
	return nil
}

// withSession opens the store for a subcommand and closes it afterwards.
func withSession(cmd *cobra.Command, opts *Options, fn func(ctx context.Context, s *session) error) error {
	s, err := openSession(cmd, opts, false)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(cmd.Context(), s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
