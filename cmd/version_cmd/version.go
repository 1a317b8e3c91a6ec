package version_cmd

import (
	L "hourbox/logger"

	"github.com/spf13/cobra"
)

// NOTE: populated at build time with -ldflags (-X)
var version string

// NOTE: populated at build time with -ldflags (-X)
var commitHash string

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			L.Printf("%s version v%s, build %s\n", cmd.Root().Name(), version, commitHash)
			return nil
		},
	}
}
