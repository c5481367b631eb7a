// Command tagtrack is the CLI entrypoint, grounded on the absence of a
// root main.go in the teacher repository (its cli.Execute() in
// internal/cli/root.go is the equivalent single entrypoint, invoked the
// same way here).
package main

import (
	"fmt"
	"os"

	"github.com/dloez/tag-track/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
