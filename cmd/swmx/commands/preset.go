package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justyntemme/swmx/pkg/framework/debug"
	"github.com/justyntemme/swmx/pkg/framework/state"
	"github.com/justyntemme/swmx/pkg/swmx"
)

var presetSet []string

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Save or show presets",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Write a preset with default values",
	Long: `Write a YAML preset holding every parameter at its default value.
Use --set to override individual parameters, by number or display value:

  swmx preset save live.yaml --groups 2 --set g1.ctrl_type=Trigger --set g2.volume=-6dB`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAlgorithm()
		if err != nil {
			return err
		}
		for _, kv := range presetSet {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("--set %q: want key=value", kv)
			}
			p := a.Parameters().Lookup(strings.TrimSpace(key))
			if p == nil {
				return fmt.Errorf("--set %q: unknown parameter", kv)
			}
			v, err := p.ParseValue(value)
			if err != nil {
				return fmt.Errorf("--set %q: %w", kv, err)
			}
			p.SetValue(v)
		}

		if err := a.State().SaveFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d parameters)\n", args[0], a.Parameters().Count())
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a preset with display values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read preset: %w", err)
		}
		preset, err := state.Read(bytes.NewReader(data))
		if err != nil {
			return err
		}
		if preset.Plugin != "" && preset.Plugin != swmx.Info.ID {
			debug.Warn("preset was saved by %s", preset.Plugin)
		}

		a, err := swmx.New(preset.Specifications, swmx.WithLogger(debug.Default()))
		if err != nil {
			return fmt.Errorf("preset specifications: %w", err)
		}
		if _, err := a.State().Load(bytes.NewReader(data)); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: version %d, %d group(s), %d destination(s)\n",
			args[0], preset.Version, a.NumGroups(), a.NumDests())

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, labelStyle.Render("KEY\tVALUE\tDISPLAY"))
		for _, p := range a.Parameters().All() {
			if _, ok := preset.Values[p.Key]; !ok {
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", p.Key, p.Value(), p.String())
		}
		return w.Flush()
	},
}

func init() {
	addSpecFlags(presetSaveCmd)
	presetSaveCmd.Flags().StringArrayVar(&presetSet, "set", nil, "override a parameter, key=value (repeatable)")

	presetCmd.AddCommand(presetSaveCmd, presetShowCmd)
	rootCmd.AddCommand(presetCmd)
}
