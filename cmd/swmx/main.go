// Command swmx renders switching-mixer scenes offline and inspects the
// parameter layout and presets.
//
// Usage:
//
//	swmx [--log-level LEVEL] <command> [args]
//
// Commands:
//
//	render   - render a scene file to WAV outputs
//	params   - print the parameter layout
//	preset   - save or show YAML presets
//	version  - print build information
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/justyntemme/swmx/cmd/swmx/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
