package tui_cmd

import (
	"hourbox/cmd/cmd_env"
	"hourbox/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func Command(env *cmd_env.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the calendar and files interactively",
		Long:  usageStr,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			p := tea.NewProgram(tui.NewApp(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
}
