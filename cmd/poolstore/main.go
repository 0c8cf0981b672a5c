// Command poolstore is the command-line front end of the pool equipment
// storefront.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/poolstore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
