// Command baus sorts lines from stdin by how often or how recently they
// were picked.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/baus/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "baus: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
