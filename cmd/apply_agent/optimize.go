package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/popup"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Suggest resume improvements for the stored job",
	Long:  "Ask Gemini for targeted resume improvements, grouped by category. An unusable reply prints no suggestions rather than failing.",
	RunE:  runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	set, err := a.controller.OptimizeResume(cmd.Context())
	if err != nil {
		if popup.IsNotReady(err) {
			return err
		}
		return fmt.Errorf("%s: %w", a.controller.Snapshot().Suggestions.Message, err)
	}

	a.printer.PrintSuggestions(set)
	return nil
}
