package cmd

import (
	"sqe/cmd/cli/app"
	"sqe/internal/core"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initializeCmd)
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Generates a new configuration file with default values",
	Long:  `A new configuration file is written to ~/.sqe-config.yaml, or to the path given with --config. It contains the default load limits and elevation settings. The file is not created if it already exists.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectInitializeCommandHandler(core.ConfigPath(configPath))
		if err != nil {
			return err
		}

		return handler.Handle()
	},
}
