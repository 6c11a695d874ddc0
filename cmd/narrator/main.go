// Package main is the entry point for the narrator CLI.
//
// Usage:
//
//	narrator [flags] <command> [args]
//
// Commands:
//
//	run       - Run the perpetual commentary loop
//	personas  - List the configured personas
//	version   - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/offbeam/narrator/cmd/narrator/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
