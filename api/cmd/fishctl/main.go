// Package main is the entry point for the fishctl CLI.
package main

import (
	"os"

	"fish-price-api/api/cmd/fishctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
