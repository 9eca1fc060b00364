package fetch

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

// Source names where a job page comes from. One of URL, HTMLFile or HTML is set;
// with HTMLFile or HTML, URL may still be given as the page's original address.
type Source struct {
	URL            string
	HTMLFile       string
	HTML           string
	UseBrowser     bool
	BrowserTimeout time.Duration
	Verbose        bool
}

// Renderer renders a URL to HTML. WithBrowser satisfies it.
type Renderer func(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error)

// Loader acquires page HTML for a Source.
type Loader struct {
	Options *Options
	Render  Renderer
}

// NewLoader returns a Loader using plain HTTP and headless Chrome.
func NewLoader() *Loader {
	return &Loader{Options: DefaultOptions(), Render: WithBrowser}
}

// Load returns the page HTML. An HTTP fetch is retried in the browser when
// UseBrowser is set and either the board is known to render client-side or
// the fetched page carries too little text.
func (l *Loader) Load(ctx context.Context, src Source) (*Result, error) {
	if src.HTML != "" {
		return &Result{URL: src.URL, HTML: src.HTML, Via: ViaInline}, nil
	}
	if src.HTMLFile != "" {
		data, err := os.ReadFile(src.HTMLFile)
		if err != nil {
			return nil, &Error{URL: src.HTMLFile, Message: "failed to read HTML file", Cause: err}
		}
		return &Result{URL: src.URL, HTML: string(data), Via: ViaFile}, nil
	}

	if src.URL == "" {
		return nil, &Error{Message: "no URL or HTML given"}
	}
	if _, err := ValidateURL(src.URL); err != nil {
		return nil, err
	}

	platform := DetectPlatform(src.URL)
	if src.Verbose {
		log.Printf("[VERBOSE] URL: %s (platform: %s)", src.URL, platform)
	}

	if src.UseBrowser && platform.RequiresBrowser() {
		return l.render(ctx, src)
	}

	result, err := URL(ctx, src.URL, l.Options)
	if err != nil {
		if src.UseBrowser {
			if src.Verbose {
				log.Printf("[VERBOSE] HTTP fetch failed (%v), trying browser", err)
			}
			return l.render(ctx, src)
		}
		return nil, err
	}

	if src.UseBrowser {
		text, extractErr := ExtractMainText(result.HTML, platform.ContentSelectors(), platform.NoiseSelectors()...)
		if extractErr == nil && ShouldUseBrowser(text) {
			if src.Verbose {
				log.Printf("[VERBOSE] Content too short (%d chars < %d), rendering in browser", len(text), MinContentLength)
			}
			rendered, renderErr := l.render(ctx, src)
			if renderErr == nil {
				return rendered, nil
			}
			log.Printf("Browser rendering failed, using HTTP content: %v", renderErr)
		}
	}

	return result, nil
}

func (l *Loader) render(ctx context.Context, src Source) (*Result, error) {
	render := l.Render
	if render == nil {
		render = WithBrowser
	}
	html, err := render(ctx, src.URL, src.BrowserTimeout, src.Verbose)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", src.URL, err)
	}
	return &Result{URL: src.URL, HTML: html, StatusCode: 200, Via: ViaBrowser}, nil
}
