package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/popup"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter for the stored job",
	Long: `Draft a cover letter from the stored resume and job. The letter is printed to stdout so it
can be piped; --out also saves it as plain text.`,
	RunE: runCoverLetter,
}

var coverLetterOut string

func init() {
	coverLetterCmd.Flags().StringVarP(&coverLetterOut, "out", "o", "", "Save the letter to this file (use \"-\" for "+popup.DefaultCoverLetterFile+")")

	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	letter, err := a.controller.GenerateCoverLetter(cmd.Context())
	if err != nil {
		if popup.IsNotReady(err) {
			return err
		}
		return fmt.Errorf("%s: %w", a.controller.Snapshot().CoverLetter.Message, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), letter)

	if coverLetterOut == "" {
		return nil
	}
	path := coverLetterOut
	if path == "-" {
		path = ""
	}
	saved, err := a.controller.SaveCoverLetter(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Cover letter saved to %s\n", saved)
	return nil
}
