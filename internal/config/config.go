// Package config holds the application configuration, the standup home
// directory layout, and persisted UI state.
package config

import (
	"os"
	"os/exec"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	pkgconfig "github.com/marloe/standup/pkg/config"
)

// Theme names accepted by the UI.
const (
	ThemeDefault = "default"
	ThemeOcean   = "ocean"
	ThemeForest  = "forest"
)

// Config is the application configuration, loaded from
// $STANDUP_HOME/config.yaml.
type Config struct {
	// BasePath is the root under which the projects tree lives.
	BasePath string `yaml:"base_path"`
	// OverviewDir is the projects tree location relative to BasePath.
	OverviewDir string `yaml:"overview_dir"`
	// Editor overrides $EDITOR for full-file editing.
	Editor string `yaml:"editor"`
	// Theme selects the color palette.
	Theme string `yaml:"theme"`
	// DockerHost, when set, runs docker status checks over ssh.
	DockerHost string `yaml:"docker_host"`

	DashboardColumns []string `yaml:"dashboard_columns"`
	StatusPresets    []string `yaml:"status_presets"`
	PriorityPresets  []string `yaml:"priority_presets"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BasePath, validation.Required),
		validation.Field(&c.Theme, validation.In(ThemeDefault, ThemeOcean, ThemeForest)),
		validation.Field(&c.DashboardColumns, validation.Required, validation.Each(validation.Required)),
		validation.Field(&c.StatusPresets, validation.Required),
		validation.Field(&c.PriorityPresets, validation.Required),
	)
}

// ProjectsPath returns the projects tree root.
func (c *Config) ProjectsPath() string {
	return filepath.Join(c.BasePath, c.OverviewDir)
}

// ResolvedEditor picks the editor for full-file edits: the configured one,
// then micro when installed, then $EDITOR, then nano.
func (c *Config) ResolvedEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	if _, err := exec.LookPath("micro"); err == nil {
		return "micro"
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "nano"
}

// NewDefaultConfig returns a Config with the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		// OverviewDir empty means the projects live directly under BasePath.
		Theme: ThemeDefault,
		DashboardColumns: []string{
			"status", "priority", "project", "next_action",
		},
		StatusPresets: []string{
			"Active", "Paused", "Backlog", "IN PROGRESS",
			"BLOCKED", "STUCK", "READY", "RUNNING",
		},
		PriorityPresets: []string{"High", "Medium", "Low"},
	}
}

// Home returns the standup home directory: $STANDUP_HOME or ~/.standup.
func Home() string {
	if env := os.Getenv("STANDUP_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".standup"
	}
	return filepath.Join(home, ".standup")
}

// Path helpers for files under the home directory.
func FilePath() string       { return filepath.Join(Home(), "config.yaml") }
func StatePath() string      { return filepath.Join(Home(), "state.json") }
func ScratchpadPath() string { return filepath.Join(Home(), "scratchpad.md") }
func JournalDir() string     { return filepath.Join(Home(), "journal") }
func JournalDBPath() string  { return filepath.Join(Home(), "journal.db") }
func LogPath() string        { return filepath.Join(Home(), "standup.log") }

// Load reads config.yaml over the defaults. A missing file is not an
// error: defaults plus base-path auto-detection apply.
func Load() (*Config, error) {
	return LoadFile(FilePath())
}

// LoadFile is Load with an explicit config path.
func LoadFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(path, cfg); err != nil {
		return nil, err
	}
	if cfg.BasePath == "" {
		cfg.BasePath = detectBasePath()
	}
	return cfg, nil
}

// Save persists the config (theme cycling and column edits mutate it at
// runtime).
func Save(cfg *Config) error {
	return pkgconfig.Save(FilePath(), cfg)
}

// detectBasePath probes common locations for a projects tree so a fresh
// install works without a config file.
func detectBasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, candidate := range []string{
		filepath.Join(home, "projects"),
		filepath.Join(home, "server"),
	} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return ""
}
