package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dshills/keynav/pkg/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
)

const (
	// Version is the current version of keynav
	Version = "1.0.0"
)

// Options holds the global flags shared by every subcommand
type Options struct {
	ConfigPath string
	Debug      bool
	LogFile    string

	logger  *slog.Logger
	logSink io.Closer
}

// Logger returns the logger built from the flags, or a discarding logger
// before PersistentPreRunE has run
func (o *Options) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// LoadConfig loads the config file named by --config, KEYNAV_CONFIG or the default path
func (o *Options) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// ConfigFile resolves the config file path without reading it
func (o *Options) ConfigFile() (string, error) {
	if o.ConfigPath != "" {
		return o.ConfigPath, nil
	}
	return config.DefaultPath()
}

// NewRootCommand creates the root cobra command for keynav
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "keynav",
		Short: "keynav - hierarchical keyboard navigation for terminal UIs",
		Long: `keynav moves keyboard focus through a changing, nested collection of items.

Items register as they mount and deregister as they unmount; Tab and Shift-Tab
walk through them in order, drilling into and out of nested groups, and Escape
clears focus. The navigation keys are configurable in ~/.keynav/config.yaml.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.setupLogging(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logSink != nil {
				return opts.logSink.Close()
			}
			return nil
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default: $KEYNAV_CONFIG or ~/.keynav/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	cmd.AddCommand(NewKeysCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))

	return cmd
}

// setupLogging builds a tint handler at Debug or Info level.
// Logs go to --log-file when set, otherwise to stderr.
func (o *Options) setupLogging(stderr io.Writer) error {
	level := slog.LevelInfo
	if o.Debug {
		level = slog.LevelDebug
	}

	var out io.Writer = stderr
	noColor := true
	switch {
	case o.LogFile != "":
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("log file %q init failed: %w", o.LogFile, err)
		}
		out = f
		o.logSink = f
	case stderr == os.Stderr:
		out = colorable.NewColorableStderr()
		noColor = false
	}

	o.logger = slog.New(tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
	slog.SetDefault(o.logger)
	return nil
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
