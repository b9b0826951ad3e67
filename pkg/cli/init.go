package cli

import (
	"fmt"
	"os"

	"github.com/dshills/keynav/pkg/config"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command
func NewInitCommand(opts *Options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Create the keynav config file with the default keys.

The file is created at --config, $KEYNAV_CONFIG or ~/.keynav/config.yaml.
An existing file is left alone unless --force is given.

Examples:
  keynav init
  keynav init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.ConfigFile()
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists: %s\n\nUse --force to overwrite it", path)
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}

			opts.Logger().Debug("config written", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
