package autofill

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/apply-assistant/internal/fetch"
)

// Options controls a browser fill.
type Options struct {
	Timeout time.Duration
	// ScreenshotPath, when set, receives a PNG of the filled page.
	ScreenshotPath string
	Verbose        bool
}

// Report describes a browser fill.
type Report struct {
	URL        string `json:"url"`
	Plan       Plan   `json:"plan"`
	Filled     int    `json:"filled"`
	Screenshot string `json:"screenshot,omitempty"`
}

// Apply opens url in headless Chrome, plans against the rendered form and
// fills it. Missing fields are reported, not treated as errors.
func Apply(ctx context.Context, url string, id Identity, opts Options) (*Report, error) {
	if _, err := fetch.ValidateURL(url); err != nil {
		return nil, err
	}

	browserCtx, cancel := fetch.NewBrowserContext(ctx, opts.Timeout)
	defer cancel()

	var html string
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	); err != nil {
		return nil, &fetch.Error{URL: url, Message: "failed to open form page", Cause: err}
	}

	plan, err := PlanHTML(html, id)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Autofill plan: %d fields, missing %v", len(plan.Assignments), plan.Missing)
	}
	for _, field := range plan.Missing {
		log.Printf("Could not find field for: %s", field)
	}

	report := &Report{URL: url, Plan: plan}
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(plan.Script(), &report.Filled)); err != nil {
		return nil, &fetch.Error{URL: url, Message: "failed to fill form", Cause: err}
	}

	if opts.ScreenshotPath != "" {
		var png []byte
		if err := chromedp.Run(browserCtx, chromedp.FullScreenshot(&png, 90)); err != nil {
			return report, fmt.Errorf("failed to capture screenshot: %w", err)
		}
		if err := os.WriteFile(opts.ScreenshotPath, png, 0644); err != nil {
			return report, fmt.Errorf("failed to write screenshot: %w", err)
		}
		report.Screenshot = opts.ScreenshotPath
	}

	return report, nil
}
