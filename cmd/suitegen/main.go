// Package main is the entry point for the suitegen CLI.
package main

import (
	"os"

	"github.com/suitegen/suitegen/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
