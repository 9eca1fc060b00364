package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/autofill"
	"github.com/jonathan/apply-assistant/internal/store"
)

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill an application form with your details",
	Long: `Open an application form in headless Chrome and type your name, email, phone and LinkedIn
URL into the matching inputs. Details come from the identity in the config file or the
APPLY_* environment variables, falling back to the stored resume.

--dry-run only reports which inputs would be filled and works without Chrome.`,
	RunE: runAutofill,
}

var (
	autofillURL        string
	autofillHTMLFile   string
	autofillDryRun     bool
	autofillScreenshot string
	autofillTimeout    int
)

func init() {
	autofillCmd.Flags().StringVarP(&autofillURL, "url", "u", "", "URL of the application form")
	autofillCmd.Flags().StringVar(&autofillHTMLFile, "html-file", "", "Saved HTML of the form (--dry-run only)")
	autofillCmd.Flags().BoolVar(&autofillDryRun, "dry-run", false, "Report the planned fill without opening a browser")
	autofillCmd.Flags().StringVar(&autofillScreenshot, "screenshot", "", "Save a PNG of the filled form")
	autofillCmd.Flags().IntVar(&autofillTimeout, "timeout", 0, "Browser timeout in seconds (optional, defaults to the browser timeout setting)")

	rootCmd.AddCommand(autofillCmd)
}

func runAutofill(cmd *cobra.Command, _ []string) error {
	if !autofillDryRun && autofillURL == "" {
		return fmt.Errorf("--url is required unless --dry-run is used with --html-file")
	}

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.identity(cmd)
	if err != nil {
		return err
	}

	if autofillDryRun {
		src, err := jobSource(a.cfg, autofillURL, autofillHTMLFile, false)
		if err != nil {
			return err
		}
		page, err := newLoader().Load(cmd.Context(), src)
		if err != nil {
			return fmt.Errorf("failed to load form: %w", err)
		}
		plan, err := autofill.PlanHTML(page.HTML, id)
		if err != nil {
			return err
		}
		url := page.URL
		if url == "" {
			url = autofillHTMLFile
		}
		a.printer.PrintAutofill(&autofill.Report{URL: url, Plan: plan})
		return nil
	}

	timeout := a.cfg.BrowserTimeout()
	if autofillTimeout > 0 {
		timeout = time.Duration(autofillTimeout) * time.Second
	}
	report, err := autofill.Apply(cmd.Context(), autofillURL, id, autofill.Options{
		Timeout:        timeout,
		ScreenshotPath: autofillScreenshot,
		Verbose:        a.cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("autofill failed: %w", err)
	}
	a.printer.PrintAutofill(report)
	return nil
}

// identity returns the configured identity, or one derived from the stored resume.
func (a *app) identity(cmd *cobra.Command) (autofill.Identity, error) {
	if a.cfg.Identity != nil {
		return *a.cfg.Identity, nil
	}

	profile, _, err := a.repo.LoadResume(cmd.Context())
	if errors.Is(err, store.ErrNotFound) {
		return autofill.Identity{}, fmt.Errorf("no identity configured: set APPLY_FIRST_NAME and friends, or upload a resume first")
	}
	if err != nil {
		return autofill.Identity{}, err
	}

	id := autofill.IdentityFromProfile(profile)
	if err := id.Validate(); err != nil {
		return autofill.Identity{}, fmt.Errorf("stored resume cannot fill forms: %w", err)
	}
	if a.cfg.Verbose {
		log.Printf("[VERBOSE] Using identity from stored resume")
	}
	return id, nil
}
