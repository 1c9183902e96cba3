// Package main provides the CLI for the adminshell layout server.
package main

import (
	"os"

	"github.com/leapstack-labs/adminshell/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
