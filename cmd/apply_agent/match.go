package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/popup"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the stored resume against the stored job",
	RunE:  runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.controller.ComputeMatch(cmd.Context()); err != nil {
		if popup.IsNotReady(err) {
			return err
		}
		a.showMatch()
		return fmt.Errorf("match failed: %w", err)
	}

	a.showMatch()
	return nil
}
