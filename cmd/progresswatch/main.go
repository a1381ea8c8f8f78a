// Package main is the entry point for the progresswatch CLI.
package main

import (
	"os"

	"github.com/watchfire-io/progresswatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
