package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/justyntemme/swmx/cmd/swmx/internal/build"
	"github.com/justyntemme/swmx/pkg/swmx"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, build.String())
		fmt.Fprintf(out, "  algorithm: %s %s (%s)\n", swmx.Info.Name, swmx.Info.Version, swmx.Info.ID)
		fmt.Fprintf(out, "  uid:       %X\n", swmx.Info.UID())
		fmt.Fprintf(out, "  go:        %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
