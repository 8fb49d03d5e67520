// Package main is the entry point for the datacleaner CLI.
package main

import (
	"os"

	"github.com/jmylchreest/datacleaner/cmd/datacleaner/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
