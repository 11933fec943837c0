// Package cli wires mdskin's commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/mdskin/internal/config"
)

// options are the settings shared by every command: persistent flags
// layered over the config file.
type options struct {
	configPath string
	skinName   string
	logLevel   string
	logFile    string
	width      int

	cfg       *config.Config
	logCloser io.Closer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "mdskin",
		Short: "Render Markdown in the terminal with skins",
		Long: `mdskin lays Markdown out for the terminal: styled by a skin, wrapped to
the terminal width, and optionally shown in a scrollable pager.

Skins are presets (see "mdskin skins") or TOML/YAML files that override a
preset per element kind.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return o.teardown()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mdskin/config.toml)")
	f.StringVarP(&o.skinName, "skin", "s", "", "skin preset name or skin file")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&o.logFile, "log-file", "", "write logs to this file instead of stderr")
	f.IntVarP(&o.width, "width", "w", 0, "render width (default: terminal width)")

	cmd.AddCommand(
		newRenderCmd(o),
		newViewCmd(o),
		newFollowCmd(o),
		newSkinsCmd(o),
		newSkinCmd(o),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return err
	}
	if wd, err := os.Getwd(); err == nil {
		if _, err := cfg.ApplyProject(wd); err != nil {
			return err
		}
	}
	if o.skinName != "" {
		cfg.Skin = o.skinName
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if o.width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", config.ErrInvalidConfig, o.width)
	}
	if o.width > 0 {
		cfg.Width = o.width
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	var w io.Writer = cmd.ErrOrStderr()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		o.logCloser = f
		w = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	for _, key := range cfg.Undecoded {
		slog.Warn("unknown config key", "key", key)
	}
	return nil
}

func (o *options) teardown() error {
	if o.logCloser == nil {
		return nil
	}
	err := o.logCloser.Close()
	o.logCloser = nil
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
