// Package main is the entry point for the countrylist CLI.
//
// All functionality lives in internal/cli, which defines the cobra
// commands. Build-time variables (version, commit, date) are injected via
// ldflags and default to "dev", "none" and "unknown" during development.
package main

import (
	"github.com/shinji-kodama/countrylist/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
