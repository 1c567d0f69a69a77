// This program drives the load validation harness against a running node and
// exits non-zero when any gate fails.
package main

import (
	"os"

	"github.com/quantumcoin/node/app/tooling/loadtest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
