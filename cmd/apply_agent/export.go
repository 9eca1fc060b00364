package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/export"
	"github.com/jonathan/apply-assistant/internal/popup"
	"github.com/jonathan/apply-assistant/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored job and match to an Excel report",
	Long:  "Write the stored job, the last match and optionally fresh resume suggestions to an .xlsx workbook.",
	RunE:  runExport,
}

var (
	exportOut         string
	exportSuggestions bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "report.xlsx", "Output workbook path")
	exportCmd.Flags().BoolVar(&exportSuggestions, "with-suggestions", false, "Ask Gemini for resume suggestions and include them")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, exportSuggestions)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	job, err := a.repo.LoadJob(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no job details stored: run refresh-job first")
	}
	if err != nil {
		return err
	}

	report := export.Report{Job: *job, GeneratedAt: time.Now()}

	if _, name, err := a.repo.LoadResume(ctx); err == nil {
		report.ResumeName = name
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if result, err := a.repo.LoadMatch(ctx); err == nil {
		report.Match = result
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if exportSuggestions {
		set, err := a.controller.OptimizeResume(ctx)
		if err != nil {
			if popup.IsNotReady(err) {
				return err
			}
			return fmt.Errorf("%s: %w", a.controller.Snapshot().Suggestions.Message, err)
		}
		report.Suggestions = set
	}

	path, err := export.WriteExcel(report, exportOut)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}
