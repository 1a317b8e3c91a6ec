package transfer_cmd

import (
	"context"
	"errors"
	"fmt"
	"hourbox/cmd/cmd_env"
	"hourbox/file_io"
	L "hourbox/logger"
	"hourbox/session"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func ExportCommand(env *cmd_env.Env) *cobra.Command {
	var output string
	var toClipboard, fromRemote bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions and the target as JSON",
		Long:  exportUsageStr,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			var remote remoteExporter
			if a.Remote != nil {
				remote = a.Remote
			}
			data, err := exportData(ctx, a.Sessions, remote, fromRemote)
			if err != nil {
				return err
			}

			switch {
			case output != "":
				output, err = cmd_env.ExpandHome(output)
				if err != nil {
					return err
				}
				_, err = file_io.WriteToFile(output, data, file_io.WRITE_OVERWRITE)
				if err != nil {
					return fmt.Errorf("could not write export: %w", err)
				}
				L.Printf("Exported %d sessions to %s\n", len(a.Sessions.Sessions()), output)
			case toClipboard:
				err = clipboard.WriteAll(string(data))
				if err != nil {
					return fmt.Errorf("could not copy to clipboard: %w", err)
				}
				L.Println("Copied export to clipboard")
			default:
				L.Println(string(data))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy to the clipboard instead of stdout")
	cmd.Flags().BoolVar(&fromRemote, "remote", false, "export what the remote store holds")
	cmd.MarkFlagsMutuallyExclusive("output", "clipboard")
	return cmd
}

type remoteExporter interface {
	Export(ctx context.Context) (*session.Snapshot, error)
}

func exportData(ctx context.Context, sessions *session.Manager, remote remoteExporter, fromRemote bool) ([]byte, error) {
	if !fromRemote {
		return sessions.ExportJSON()
	}
	if remote == nil {
		return nil, fmt.Errorf("no remote configured")
	}
	snapshot, err := remote.Export(ctx)
	if err != nil {
		return nil, err
	}
	return session.MarshalSnapshot(snapshot)
}

func ImportCommand(env *cmd_env.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace every session with the ones in an export file",
		Long:  importUsageStr,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, err := cmd_env.ExpandHome(args[0])
			if err != nil {
				return err
			}
			data, err := file_io.ReadFile(ctx, path, nil)
			if err != nil {
				return fmt.Errorf("could not read %s: %w", path, err)
			}

			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			result, err := a.Sessions.Import(ctx, data)
			if err != nil && !errors.Is(err, session.ErrPersist) {
				return err
			}
			cmd_env.ReportSync(a, err)
			L.Printf("Imported %d sessions", result.Imported)
			if result.Dropped > 0 {
				L.Printf(", dropped %d invalid entries", result.Dropped)
			}
			L.Println()
			return nil
		},
	}
}

const exportUsageStr string = `
DESCRIPTION
Writes the sessions and the hour target as JSON in the form

    {"exportDate": "...", "target": 500, "sessions": [...]}

to stdout, a file (-o) or the clipboard (--clipboard). With --remote the data
comes from the remote store instead of the local copy.
`

const importUsageStr string = `
DESCRIPTION
Replaces every session with the ones in FILE, which is either an export file
or a bare JSON array of sessions. Entries that are not valid sessions are
dropped and counted. A target in the file replaces the current target.
The result is saved locally and pushed to the remote.
`
