package cli

import (
	"fmt"
	"log/slog"

	"github.com/dshills/keynav/pkg/tui"
	"github.com/spf13/cobra"
)

// NewDemoCommand creates the demo command
func NewDemoCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive navigation demo",
		Long: `Launch a terminal list with a nested section and move focus through it.

Keys:
  Tab / Shift-Tab   move focus (configurable)
  Escape            clear focus (configurable)
  a                 add a row
  d                 remove the focused row
  q, Ctrl-c         quit

The terminal is taken over while the demo runs, so logs are only written
when --log-file is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			km, err := cfg.Keymap()
			if err != nil {
				return fmt.Errorf("invalid keymap: %w", err)
			}

			logger := slog.New(slog.DiscardHandler)
			if opts.LogFile != "" {
				logger = opts.Logger()
			}

			app, err := tui.NewApp(tui.AppConfig{
				Keymap:      km,
				BindingMode: cfg.BindingMode(),
				Logger:      logger,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize TUI: %w", err)
			}
			defer app.Close()

			if err := app.Run(); err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}
			return nil
		},
	}
}
