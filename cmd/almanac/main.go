// Package main provides the almanac CLI.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/roach88/almanac/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
