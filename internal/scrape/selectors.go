package scrape

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultDescriptionSelectors are tried in order for the description.
var DefaultDescriptionSelectors = []string{
	".job-description",
	".job-details",
	"[itemprop='description']",
	".description",
	".job-summary",
	".job-body",
}

// DefaultCompanySelectors are tried in order for the company.
var DefaultCompanySelectors = []string{
	".company-name",
	".company",
	"[itemprop='hiringOrganization']",
	"[data-testid='company-name']",
	".employer-name",
	".job-company",
}

// firstText returns the first non-empty element text over the selectors, in selector order.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		var text string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = normalizeSpace(s.Text())
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

// DescriptionSelectors fills the description from well-known containers.
type DescriptionSelectors struct {
	Selectors []string
}

// Name implements Extractor.
func (DescriptionSelectors) Name() string { return "description-selectors" }

// Extract implements Extractor.
func (d DescriptionSelectors) Extract(c *Context) {
	if !c.Missing(FieldDescription) {
		return
	}
	c.Set(FieldDescription, firstText(c.Doc, d.Selectors), d.Name())
}

// CompanySelectors fills the company from well-known elements.
type CompanySelectors struct {
	Selectors []string
}

// Name implements Extractor.
func (CompanySelectors) Name() string { return "company-selectors" }

// Extract implements Extractor.
func (s CompanySelectors) Extract(c *Context) {
	if !c.Missing(FieldCompany) {
		return
	}
	c.Set(FieldCompany, firstText(c.Doc, s.Selectors), s.Name())
}

// Paragraphs builds a description from the first substantial paragraphs and
// list items.
type Paragraphs struct {
	MinLength int
	Limit     int
}

// Name implements Extractor.
func (Paragraphs) Name() string { return "paragraphs" }

// Extract implements Extractor.
func (p Paragraphs) Extract(c *Context) {
	if !c.Missing(FieldDescription) {
		return
	}

	minLength, limit := p.MinLength, p.Limit
	if limit <= 0 {
		limit = 3
	}

	var picked []string
	c.Doc.Find("p, li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) > minLength {
			picked = append(picked, normalizeSpace(text))
		}
		return len(picked) < limit
	})
	c.Set(FieldDescription, strings.Join(picked, " "), p.Name())
}
