// Package main provides the hph command line tool.
package main

import (
	"os"

	"github.com/ericfisherdev/happyplace/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
