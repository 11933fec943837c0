// Package config loads mdskin settings from the user config file and an
// optional per-project override.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ProjectFile is the name of the per-project override read from the
// working directory.
const ProjectFile = ".mdskin.yaml"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the user's settings.
type Config struct {
	// Skin is a preset name or the path of a skin file.
	Skin string `toml:"skin" yaml:"skin"`
	// Width caps the render width; 0 uses the terminal width.
	Width    int    `toml:"width" yaml:"width"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`

	Pager PagerConfig `toml:"pager" yaml:"pager"`
	List  ListConfig  `toml:"list" yaml:"list"`

	// Undecoded lists keys in the TOML file that matched no setting.
	Undecoded []string `toml:"-" yaml:"-"`
}

// PagerConfig controls the interactive viewer.
type PagerConfig struct {
	Scrollbar bool `toml:"scrollbar" yaml:"scrollbar"`
	Progress  bool `toml:"progress" yaml:"progress"`
	TOC       bool `toml:"toc" yaml:"toc"`
	WatchSkin bool `toml:"watch_skin" yaml:"watch_skin"`
}

// ListConfig controls list views such as the table of contents.
type ListConfig struct {
	// MaxColumnWidth caps every column; 0 leaves columns uncapped.
	MaxColumnWidth int `toml:"max_column_width" yaml:"max_column_width"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Skin:     "default",
		LogLevel: "warn",
		Pager: PagerConfig{
			Scrollbar: true,
			Progress:  true,
			TOC:       true,
			WatchSkin: true,
		},
		List: ListConfig{MaxColumnWidth: 60},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mdskin/config.toml, falling back to
// ~/.config/mdskin/config.toml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdskin", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "mdskin", "config.toml")
	}
	return filepath.Join(home, ".config", "mdskin", "config.toml")
}

// Load reads the TOML file at path over the defaults. A missing file is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load that returns the defaults when the file does not
// exist. An empty path means DefaultPath.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", path)
		return Default(), nil
	}
	return Load(path)
}

// ApplyProject overlays dir/.mdskin.yaml onto c. Only keys present in the
// file change. It reports whether a file was found.
func (c *Config) ApplyProject(dir string) (bool, error) {
	path := filepath.Join(dir, ProjectFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read project config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLogLevel maps a level name to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return slog.LevelWarn, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
	}
	return lvl, nil
}

// SlogLevel returns the configured level, warn when it is unset.
func (c *Config) SlogLevel() slog.Level {
	if c.LogLevel == "" {
		return slog.LevelWarn
	}
	lvl, _ := ParseLogLevel(c.LogLevel)
	return lvl
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("%w: width must not be negative, got %d", ErrInvalidConfig, c.Width))
	}
	if c.List.MaxColumnWidth < 0 {
		errs = append(errs, fmt.Errorf("%w: list.max_column_width must not be negative, got %d", ErrInvalidConfig, c.List.MaxColumnWidth))
	}
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
