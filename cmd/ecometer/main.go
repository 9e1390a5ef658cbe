// Command ecometer estimates product eco-scores from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/ecometer/ecometer/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
