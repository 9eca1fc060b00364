// Package main provides the entry point for the job application assistant CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "apply_agent",
	Short: "Job application assistant",
	Long: `apply_agent keeps a structured copy of your resume, reads job postings and uses Gemini to
score the match, suggest resume improvements and draft cover letters.

Configuration can be loaded from a JSON file using --config. Environment variables override
config file values; command-line flags override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	statePath  string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Path to the state file (optional, defaults to APPLY_STATE_PATH or ~/.apply-assistant/state.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
