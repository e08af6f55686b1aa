package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/swmx/pkg/framework/debug"
)

// Global flags
var logLevel string

var rootCmd = &cobra.Command{
	Use:   "swmx",
	Short: "Switching mixer renderer and preset tool",
	Long: `swmx - offline host for the switching mixer.

Each group routes a mono or stereo input to one of up to four destination
bus pairs, selected by a control bus, a MIDI controller or the Active Dest
parameter, with smooth crossfades between destinations.

Examples:
  # Render a scene to WAV files next to it
  swmx render scene.yaml

  # Show the layout of a 2-group, 4-destination instance
  swmx params --groups 2 --destinations 4

  # Write a preset with defaults and inspect it
  swmx preset save default.yaml --groups 2
  swmx preset show default.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := debug.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		debug.SetOutput(cmd.ErrOrStderr())
		debug.SetLevel(level)
		return nil
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, off")
}
