package cli

import (
	"fmt"

	"github.com/dshills/keynav/pkg/navigation"
	"github.com/dshills/keynav/pkg/tui"
	"github.com/spf13/cobra"
)

// NewKeysCommand creates the keys command
func NewKeysCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show the effective navigation keys",
		Long: `Print the navigation keys after loading the configuration file.

The keys are bound exactly as the demo binds them, so a keymap that would
conflict or fail validation is reported here as well.

Examples:
  keynav keys
  keynav keys --config ./keynav.yaml`,
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

			kh := tui.NewKeyboardHandler()
			binder := tui.NewBinder(kh, km,
				tui.WithBindingMode(cfg.BindingMode()),
				tui.WithBinderLogger(opts.Logger()))

			scope, err := binder.Bind("keys", navigation.New(navigation.WithName("keys")))
			if err != nil {
				return err
			}
			defer scope.Close()

			opts.Logger().Debug("keymap bound", "scope", scope.ID(), "mode", cfg.BindingMode())

			out := cmd.OutOrStdout()
			path, err := opts.ConfigFile()
			if err == nil {
				fmt.Fprintf(out, "Config: %s\n", path)
			}
			fmt.Fprint(out, tui.NewHelpFormatter().FormatByMode(kh.GetAllBindings()))
			return nil
		},
	}
}
