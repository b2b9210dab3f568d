// Package main is the entry point for the soundboard binary.
package main

import (
	"os"

	"github.com/ddemile/soundboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
