package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"sqe/cmd/cli/app"
	"sqe/internal/cli/output"
	"sqe/internal/core"
	"sqe/internal/core/handler"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
)

var (
	directory  string
	sudo       bool
	elevated   bool
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sqe [directory] [filename]",
	Short: "A small terminal text editor",
	Long: `SQE opens a directory and optionally a file in it for editing.

Files above the sync load limit are loaded in the background in chunks. Files the
current user cannot write open read-only; pass -s to restart the editor with elevated
privileges instead.

Configuration is read from ~/.sqe-config.yaml. Run 'sqe initialize' to create it.

Examples:
  sqe                         Open the current directory
  sqe notes todo.txt          Open notes/todo.txt
  sqe -d /etc hosts           Open /etc/hosts
  sqe -s /etc hosts           Open /etc/hosts as root`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetAllLoggers(logging.LevelDebug)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		openHandler, err := app.InjectOpenCommandHandler(core.ConfigPath(configPath))
		if err != nil {
			return err
		}

		return openHandler.Handle(cmd.Context(), openRequest(args, os.Args[1:], cwd))
	},
}

func init() {
	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", "Directory to open, overrides the positional directory")
	rootCmd.Flags().BoolVarP(&sudo, "sudo", "s", false, "Restart with elevated privileges before opening")
	rootCmd.Flags().BoolVar(&elevated, "elevated", false, "Set on the elevated instance of a restart")
	_ = rootCmd.Flags().MarkHidden("elevated")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.sqe-config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

func openRequest(positional, argv []string, cwd string) handler.OpenRequest {
	return handler.OpenRequest{
		Positional:       positional,
		Directory:        directory,
		Sudo:             sudo,
		Argv:             argv,
		WorkingDirectory: cwd,
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.PrintError(err.Error())
		stop()
		os.Exit(1)
	}
}
