package sync_cmd

import (
	"errors"
	"fmt"
	"hourbox/backend"
	"hourbox/cmd/cmd_env"
	"hourbox/config"
	L "hourbox/logger"
	"hourbox/session"

	"github.com/spf13/cobra"
)

const usageStr string = `
DESCRIPTION
Checks the remote session store and pushes the local session list to it. Use
it after working offline: every change is kept locally when the remote is
unreachable and the next successful push replaces the remote copy.

Conflicts are not detected, the last push wins.

A rejected token stops all remote traffic for the run. Pass a new one with
--token to retry with it, or store it in remote.token or HOURBOX_TOKEN.
`

func Command(env *cmd_env.Env) *cobra.Command {
	var checkOnly bool
	var token string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push local sessions to the remote store",
		Long:  usageStr,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if a.Remote == nil {
				return fmt.Errorf("no remote configured, set remote.url in %s or %s", env.ConfigPath, config.ENV_REMOTE_URL)
			}
			if token != "" {
				err = a.SetToken(token)
				if err != nil {
					return err
				}
				if a.Loaded.Source == session.LOAD_SOURCE_EMPTY {
					a.Loaded = a.Sessions.Load(ctx)
				}
			}
			L.Printf("Loaded %d sessions from %s\n", a.Loaded.Count, a.Loaded.Source)
			err = a.Remote.Health(ctx)
			if err != nil {
				return fmt.Errorf("remote is not healthy: %w", err)
			}
			L.Println("Remote is healthy")
			if checkOnly {
				return nil
			}
			if a.NeedsReauth() {
				return fmt.Errorf("remote rejected the token, pass --token or set %s: %w", config.ENV_TOKEN, backend.ErrUnauthorized)
			}
			if a.Loaded.Source == session.LOAD_SOURCE_EMPTY && a.Loaded.RemoteErr != nil {
				// pushing would replace remote data that was never read
				return fmt.Errorf("nothing loaded and remote read failed: %w", a.Loaded.RemoteErr)
			}

			result, err := a.Sessions.Save(ctx)
			cmd_env.ReportSync(a, err)
			switch {
			case result.Pushed:
				L.Printf("Pushed %d sessions at %s\n", len(a.Sessions.Sessions()), result.At.Format("15:04:05"))
			case errors.Is(result.RemoteErr, backend.ErrUnauthorized):
				return result.RemoteErr
			default:
				return fmt.Errorf("push failed: %w", result.RemoteErr)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check the remote health")
	cmd.Flags().StringVar(&token, "token", "", "use this token instead of the configured one")
	return cmd
}
