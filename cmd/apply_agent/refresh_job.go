package main

import (
	"github.com/spf13/cobra"
)

var refreshJobCmd = &cobra.Command{
	Use:   "refresh-job",
	Short: "Read a job posting and match it against the stored resume",
	Long: `Fetch a job page (or read a saved copy), extract the title, company and description, store
them and score the match when a resume is stored. Run it again to retry a failed read.`,
	RunE: runRefreshJob,
}

var (
	refreshURL      string
	refreshHTMLFile string
	refreshBrowser  bool
)

func init() {
	refreshJobCmd.Flags().StringVarP(&refreshURL, "url", "u", "", "URL of the job posting")
	refreshJobCmd.Flags().StringVar(&refreshHTMLFile, "html-file", "", "Saved HTML of the job posting (--url then names its original address)")
	refreshJobCmd.Flags().BoolVar(&refreshBrowser, "browser", false, "Render the page in headless Chrome when plain HTTP is not enough")

	rootCmd.AddCommand(refreshJobCmd)
}

func runRefreshJob(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	src, err := jobSource(a.cfg, refreshURL, refreshHTMLFile, refreshBrowser)
	if err != nil {
		return err
	}

	job, err := a.controller.RefreshJob(cmd.Context(), src)
	if err != nil {
		return err
	}

	a.printer.PrintJob(job)
	a.showMatch()
	return nil
}
