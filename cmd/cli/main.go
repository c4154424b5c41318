// Package main is the entry point for the barodeal CLI.
package main

import (
	"os"

	"barodeal/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
