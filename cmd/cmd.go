package cmd

import (
	"context"
	"hourbox/cmd/cmd_env"
	"hourbox/cmd/config_cmd"
	"hourbox/cmd/file_cmd"
	"hourbox/cmd/log_cmd"
	"hourbox/cmd/serve_cmd"
	"hourbox/cmd/stats_cmd"
	"hourbox/cmd/sync_cmd"
	"hourbox/cmd/transfer_cmd"
	"hourbox/cmd/tui_cmd"
	"hourbox/cmd/version_cmd"
	L "hourbox/logger"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree around env.
func NewRootCommand(env *cmd_env.Env) *cobra.Command {
	root := &cobra.Command{
		Use:           "hourbox",
		Short:         "Log work hours and keep files, offline first",
		Long:          usageStr,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return L.SetLevelFromString(env.LogLevel)
			}
			return env.Setup()
		},
	}
	root.PersistentFlags().StringVarP(&env.ConfigPath, "config", "c", "", "path to config.json")
	root.PersistentFlags().StringVarP(&env.LogLevel, "log-level", "L", env.LogLevel, "log level: debug info warn error panic silent")
	root.PersistentFlags().StringVar(&env.ColorMode, "color", env.ColorMode, "colored output: auto always never")

	root.AddCommand(
		log_cmd.Command(env),
		stats_cmd.Command(env),
		sync_cmd.Command(env),
		transfer_cmd.ExportCommand(env),
		transfer_cmd.ImportCommand(env),
		file_cmd.FileCommand(env),
		file_cmd.FolderCommand(env),
		serve_cmd.ServeCommand(env),
		serve_cmd.TokenCommand(env),
		config_cmd.Command(env),
		tui_cmd.Command(env),
		version_cmd.Command(),
	)
	return root
}

func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand(cmd_env.New())
	root.SetArgs(args[1:])
	return root.ExecuteContext(ctx)
}
