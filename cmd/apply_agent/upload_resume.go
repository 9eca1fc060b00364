package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/ingestion"
)

var uploadResumeCmd = &cobra.Command{
	Use:   "upload-resume",
	Short: "Read a PDF resume and store its structured profile",
	Long:  "Extract the text of a PDF resume, structure it with Gemini and replace the stored profile. The stored job is not re-matched.",
	RunE:  runUploadResume,
}

var uploadFile string

func init() {
	uploadResumeCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "Path to the resume PDF (required)")
	_ = uploadResumeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(uploadResumeCmd)
}

func runUploadResume(cmd *cobra.Command, _ []string) error {
	file, err := ingestion.ReadResumeFile(uploadFile)
	if err != nil {
		return fmt.Errorf("%s: %w", ingestion.UserMessage(err), err)
	}

	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.controller.UploadResume(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("%s: %w", ingestion.UserMessage(err), err)
	}

	a.printer.PrintResume(result.Profile, result.FileName)
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}
