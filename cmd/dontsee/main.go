package main

import (
	"os"

	"github.com/mecodix/dontsee/cmd/dontsee/commands"

	// Import prometheus metrics to register constructors
	_ "github.com/mecodix/dontsee/pkg/metrics/prometheus"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Execute(); err != nil {
		commands.PrintErr("%v", err)
		os.Exit(1)
	}
}
