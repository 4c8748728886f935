// Package main is the entry point for the chirp CLI.
//
// Usage:
//
//	chirp [flags] <command> [args]
//
// Commands:
//
//	cluster    - Cluster a batch of snippet feature records
//	runs       - Browse, inspect, and delete saved runs
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/aviarylab/chirp/cmd/chirp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
