// Command ccsbridge translates GEOTRANS coordinate-system values across the
// managed object boundary.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ccsbridge/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
