package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vsinha/ordergrid/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		settingsFile = flag.String("settings", "", "Path to a YAML view-settings file")
		format       = flag.String("format", "text", "Output format: text, json")
		edit         = flag.String("edit", "", "Quantity edit to apply, as node:sizeKey:qty")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:  *scenarioDir,
		SettingsFile: *settingsFile,
		Format:       *format,
		Edit:         *edit,
		Verbose:      *verbose,
		Help:         *help,
	}

	// Create and execute command
	cmd := commands.NewGridCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
