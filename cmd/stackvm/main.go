// Package main is the entry point for the stackvm CLI.
//
// stackvm manages virtual machines on an OpenStack-compatible cloud:
// listing, deployment from templates, power control, floating IP
// management and template materialization.
//
// For detailed usage information, run:
//
//	stackvm --help
package main

import (
	"fmt"
	"os"

	"github.com/matheuscmelo/stackvm/cmd/stackvm/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
