package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"tigerlee/internal/adapters/storage"
)

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tigerlee %s (schema=%d, %s)\n", version, storage.LatestSchemaVersion, runtime.Version())
		},
	}
}
