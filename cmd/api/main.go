// Package main is the statwrap workflow service. The root command serves the
// HTTP API; subcommands build graphs and trees from asset files and manage
// the project list from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
