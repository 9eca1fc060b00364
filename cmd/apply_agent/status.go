package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored resume, job and last match",
	RunE:  runStatus,
}

var statusFull bool

func init() {
	statusCmd.Flags().BoolVar(&statusFull, "full", false, "Print the stored resume, job and match in full")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	a.printer.Full = statusFull
	a.printer.PrintStatus(a.controller.Snapshot())
	if !statusFull {
		return nil
	}

	ctx := cmd.Context()
	profile, name, err := a.repo.LoadResume(ctx)
	switch {
	case err == nil:
		a.printer.PrintResume(profile, name)
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	job, err := a.repo.LoadJob(ctx)
	switch {
	case err == nil:
		a.printer.PrintJob(job)
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	a.showMatch()
	return nil
}
