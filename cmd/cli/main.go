// Package main is the entry point for the cloudcost CLI.
package main

import (
	"os"

	"cloudcost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
