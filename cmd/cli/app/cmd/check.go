package cmd

import (
	"fmt"

	"sqe/cmd/cli/app"
	"sqe/internal/cli/output"
	"sqe/internal/core"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check path...",
	Short: "Prints how the editor would treat each path",
	Long: `Classifies each path the way the editor does before opening it: whether it exists,
can be read and written by the current user, why not, and whether elevation would help.
For files it also prints how the file would be loaded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configRepo, err := app.InjectConfigRepo(core.ConfigPath(configPath))
		if err != nil {
			return fmt.Errorf("error injecting config repo: %v", err)
		}
		configExists, err := configRepo.ConfigExists()
		if err != nil {
			return err
		}
		if !configExists {
			output.PrintInfo(fmt.Sprintf("no config at %s, using default limits", configRepo.ConfigPath()))
		}

		handler, err := app.InjectCheckCommandHandler(core.ConfigPath(configPath))
		if err != nil {
			return err
		}

		return handler.Handle(cmd.Context(), args)
	},
}
