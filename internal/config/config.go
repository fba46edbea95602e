package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds user-tunable settings, read from YAML.
type Config struct {
	DBPath  string `yaml:"db_path" mapstructure:"db_path"`
	LogPath string `yaml:"log_path" mapstructure:"log_path"`

	// How long the "saved" notice stays on screen.
	SaveAckDelay time.Duration `yaml:"save_ack_delay" mapstructure:"save_ack_delay"`

	// How often the countdown clock refreshes.
	ClockTick time.Duration `yaml:"clock_tick" mapstructure:"clock_tick"`

	ExportDir string `yaml:"export_dir" mapstructure:"export_dir"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	dir := Dir()
	home, _ := os.UserHomeDir()
	return &Config{
		DBPath:       filepath.Join(dir, "tasktracker.db"),
		LogPath:      filepath.Join(dir, "tasktracker.log"),
		SaveAckDelay: 1500 * time.Millisecond,
		ClockTick:    time.Minute,
		ExportDir:    home,
	}
}

// Dir returns ~/.config/tasktracker (or the platform equivalent).
func Dir() string {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(cfg, "tasktracker")
}

// DefaultPath is the config file read when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.SaveAckDelay <= 0 {
		return fmt.Errorf("save_ack_delay must be positive, got %s", c.SaveAckDelay)
	}
	if c.ClockTick <= 0 {
		return fmt.Errorf("clock_tick must be positive, got %s", c.ClockTick)
	}
	return nil
}

// WriteDefault writes a commented starter config to path.
func WriteDefault(path string) error {
	content := `# tasktracker configuration

# SQLite file holding the task list
# db_path: ~/.config/tasktracker/tasktracker.db

# Diagnostic log (the terminal UI owns the screen)
# log_path: ~/.config/tasktracker/tasktracker.log

# How long "Task saved" stays visible
save_ack_delay: 1.5s

# Countdown refresh interval
clock_tick: 1m

# Where exports are written
# export_dir: ~
`
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
