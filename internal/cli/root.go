package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/tasktracker/internal/config"
	"github.com/sadopc/tasktracker/internal/store"
	"github.com/sadopc/tasktracker/internal/task"
	"github.com/sadopc/tasktracker/internal/tui"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	dbPath     string
	logPath    string
}

// Execute runs the command line and reports any error on stderr.
func Execute(version string) error {
	cmd := newRootCmd(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tasktracker",
		Short: "Track tasks and their deadlines from the terminal",
		Long: `tasktracker keeps a list of tasks with due dates, statuses and notes.

Run it without a subcommand to open the interactive view.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides db_path)")
	pf.StringVar(&opts.logPath, "log", "", "log file for the interactive view (overrides log_path)")

	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logPath != "" {
		cfg.LogPath = o.logPath
	}
	return cfg, nil
}

// session is an open database with the task list loaded from it.
type session struct {
	cfg   *config.Config
	db    *store.Store
	tasks *task.Store
	log   *slog.Logger
}

func (o *rootOptions) open(logger *slog.Logger) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return openWith(cfg, logger)
}

func openWith(cfg *config.Config, logger *slog.Logger) (*session, error) {
	db, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &session{
		cfg:   cfg,
		db:    db,
		tasks: task.NewStore(db, logger),
		log:   logger,
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

func stderrLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
}

func runTUI(opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The screen belongs to Bubble Tea, so diagnostics go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogPath, "tasktracker")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	logger := slog.New(slog.NewTextHandler(f, nil))

	s, err := openWith(cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info("starting", "db", cfg.DBPath, "tasks", s.tasks.Len())
	app := tui.NewApp(s.tasks, cfg, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
