// Package main provides the chainsql command.
package main

import (
	"os"

	"github.com/leapstack-labs/chainsql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
