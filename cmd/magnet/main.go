// @MX:ANCHOR: [AUTO] main is the entry point of the magnet CLI. It exits with status 1 on error.
// @MX:REASON: [AUTO] the only entry point of the binary; delegates to cli.Execute
package main

import (
	"os"

	"github.com/magnet-build/magnet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
