// Package scrape extracts job posting details from a page's HTML with a
// ranked chain of extraction strategies.
package scrape

import (
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/apply-assistant/internal/types"
)

// Field names a JobPosting field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldCompany     Field = "company"
	FieldDescription Field = "description"
)

// Page is the HTML of a job page and the address it was loaded from.
// URL may be empty for saved snapshots.
type Page struct {
	URL  string
	HTML string
}

// Context is shared by the strategies of one scrape.
type Context struct {
	Doc *goquery.Document
	URL *url.URL
	Job types.JobPosting
	// Sources records which strategy filled each field.
	Sources map[Field]string

	stopped bool
}

// Stop ends the chain after the current strategy.
func (c *Context) Stop() {
	c.stopped = true
}

// Set fills a field and records its source. Empty values are ignored.
func (c *Context) Set(field Field, value, source string) {
	if value == "" {
		return
	}
	switch field {
	case FieldTitle:
		c.Job.Title = value
	case FieldCompany:
		c.Job.Company = value
	case FieldDescription:
		c.Job.Description = value
	}
	c.Sources[field] = source
}

// Missing reports whether a field is still unresolved.
func (c *Context) Missing(field Field) bool {
	switch field {
	case FieldTitle:
		return c.Job.Title == ""
	case FieldCompany:
		return c.Job.Company == ""
	case FieldDescription:
		return c.Job.Description == ""
	}
	return false
}

// Extractor is one strategy in the chain.
type Extractor interface {
	Name() string
	Extract(c *Context)
}

// Result is a scraped posting plus the strategy behind each field.
type Result struct {
	Job     types.JobPosting
	Sources map[Field]string
}

// DefaultChain returns the strategies in priority order.
func DefaultChain() []Extractor {
	return []Extractor{
		JSONLD{},
		Meta{},
		DocumentTitle{},
		DescriptionSelectors{Selectors: DefaultDescriptionSelectors},
		Paragraphs{MinLength: 30, Limit: 3},
		CompanySelectors{Selectors: DefaultCompanySelectors},
		DomainCompany{},
		Headings{},
	}
}

// Scraper runs a chain of extractors over a page.
type Scraper struct {
	Chain   []Extractor
	Verbose bool
}

// New returns a Scraper with the given chain, or the default one.
func New(chain ...Extractor) *Scraper {
	if len(chain) == 0 {
		chain = DefaultChain()
	}
	return &Scraper{Chain: chain}
}

// Scrape runs the chain. It never fails: unparseable HTML or a strategy that
// panics leaves fields empty.
func (s *Scraper) Scrape(page Page) Result {
	c := &Context{Sources: make(map[Field]string)}
	if page.URL != "" {
		if parsed, err := url.Parse(page.URL); err == nil {
			c.URL = parsed
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		log.Printf("Could not parse page HTML: %v", err)
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	c.Doc = doc

	for _, extractor := range s.Chain {
		s.run(extractor, c)
		if c.stopped {
			break
		}
	}

	return Result{Job: c.Job, Sources: c.Sources}
}

func (s *Scraper) run(extractor Extractor, c *Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Scrape strategy %s failed: %v", extractor.Name(), r)
		}
	}()
	extractor.Extract(c)
	if s.Verbose {
		log.Printf("[VERBOSE] after %s: title=%t company=%t description=%t",
			extractor.Name(), !c.Missing(FieldTitle), !c.Missing(FieldCompany), !c.Missing(FieldDescription))
	}
}

// Scrape runs the default chain.
func Scrape(page Page) types.JobPosting {
	return New().Scrape(page).Job
}

// normalizeSpace trims and collapses internal whitespace runs.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
