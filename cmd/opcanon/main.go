// Command opcanon extracts and canonicalizes the op calls of a module.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "opcanon: %v\n", err)
		os.Exit(exitCode(err))
	}
}
