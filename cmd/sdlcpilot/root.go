package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sdlcpilot",
	Short: "SDLC project tracker with AI document generation",
	Long: `sdlcpilot tracks software projects through the classic SDLC phases and
generates phase documents with crews of role-scoped AI agents.

Each project starts with six phases (Requirements Analysis through
Maintenance). The requirements, design, and testing phases each have a
pipeline of agents that produces the phase's document, feeding earlier
documents into later pipelines as context.

Core capabilities:
- Tracks projects, phases, tasks, documents, and test cases in SQLite
- Runs agent pipelines for requirements, design, and testing documents
- Serves a JSON dashboard API with Prometheus metrics`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
