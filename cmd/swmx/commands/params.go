package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justyntemme/swmx/pkg/framework/debug"
	"github.com/justyntemme/swmx/pkg/framework/param"
	"github.com/justyntemme/swmx/pkg/swmx"
)

var (
	numGroups int
	numDests  int
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the parameter layout",
	Long: `Print every parameter of an instance with the given group and destination
counts, page by page. KEY is the name used in scene params and presets.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAlgorithm()
		if err != nil {
			return err
		}
		printParams(cmd.OutOrStdout(), a)
		return nil
	},
}

// addSpecFlags registers --groups and --destinations on cmd.
func addSpecFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&numGroups, "groups", 1, "number of groups (1-4)")
	cmd.Flags().IntVar(&numDests, "destinations", 2, "destinations per group (2-4)")
}

func newAlgorithm() (*swmx.Algorithm, error) {
	return swmx.New(map[string]int{
		swmx.SpecGroups:       numGroups,
		swmx.SpecDestinations: numDests,
	}, swmx.WithLogger(debug.Default()))
}

func printParams(out io.Writer, a *swmx.Algorithm) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, page := range a.Pages() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render("["+page.Name+"]"))
		fmt.Fprintln(w, labelStyle.Render("ID\tKEY\tNAME\tRANGE\tDEFAULT"))
		for _, p := range page.Params {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				p.ID, p.Key, a.DisplayName(p), valueRange(p), p.FormatValue(p.Default))
		}
	}
	w.Flush()
}

func valueRange(p *param.Parameter) string {
	if choices := p.Choices(); choices != nil {
		return strings.Join(choices, "|")
	}
	return fmt.Sprintf("%d..%d", p.Min, p.Max)
}

func init() {
	addSpecFlags(paramsCmd)
	rootCmd.AddCommand(paramsCmd)
}
