package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/justyntemme/swmx/pkg/framework/debug"
	"github.com/justyntemme/swmx/pkg/render"
)

var renderOutDir string

var renderCmd = &cobra.Command{
	Use:   "render <scene.yaml>",
	Short: "Render a scene to WAV files",
	Long: `Render a scene file offline.

The scene sets the sample rate, block size, group and destination counts,
parameter values, input buses (WAV files or generated signals), timed MIDI
controller events and the output buses written as WAV files.

Example scene:

  sample_rate: 48000
  duration: 4
  groups: 1
  destinations: 2
  params:
    g1.ctrl_type: Trigger
    g1.control: 9
    g1.fade: 2
  inputs:
    - bus: 1
      file: drums.wav
    - bus: 9
      signal: {type: pulse, frequency: 0.5, amplitude: 5, offset: 5, width: 0.1}
  outputs:
    - {file: a.wav, left: 13, right: 14}
    - {file: b.wav, left: 15, right: 16}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := render.LoadScene(args[0])
		if err != nil {
			return err
		}

		r := render.New(render.WithLogger(debug.Default()), render.WithOutputDir(renderOutDir))
		report, err := r.Render(cmd.Context(), scene)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", args[0], err)
		}
		printReport(cmd.OutOrStdout(), scene, report)
		return nil
	},
}

func printReport(out io.Writer, scene *render.Scene, report *render.Report) {
	seconds := float64(report.Frames) / float64(scene.SampleRate)
	fmt.Fprintln(out, titleStyle.Render("render "+report.ID))
	fmt.Fprintf(out, "  %d frames (%s), %d blocks, %d midi events\n",
		report.Frames, formatDuration(seconds), report.Blocks, report.Events)
	fmt.Fprintf(out, "  step avg %v, p99 %v, load %.2f%%, took %v\n",
		report.Step.Average(), report.Step.Percentile(99), report.Load*100, report.Elapsed.Round(time.Millisecond))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, labelStyle.Render("FILE\tCHANNEL\tLEVELS"))
	for _, o := range report.Outputs {
		fmt.Fprintf(w, "%s\tL\t%s\n", o.File, o.Left)
		if o.Right != nil {
			fmt.Fprintf(w, "\tR\t%s\n", o.Right)
		}
	}
	w.Flush()
}

// formatDuration formats seconds as "1.5s" or "2m05s".
func formatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	mins := int(seconds / 60)
	return fmt.Sprintf("%dm%02ds", mins, int(seconds)%60)
}

func init() {
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", "", "directory for relative output files (default: the scene's directory)")
	rootCmd.AddCommand(renderCmd)
}
