package scrape

import "strings"

// DomainCompany guesses the company from the host: "www.acme.com" gives "acme".
type DomainCompany struct{}

// Name implements Extractor.
func (DomainCompany) Name() string { return "domain" }

// Extract implements Extractor.
func (d DomainCompany) Extract(c *Context) {
	if !c.Missing(FieldCompany) || c.URL == nil {
		return
	}
	host := strings.TrimPrefix(strings.ToLower(c.URL.Hostname()), "www.")
	if host == "" {
		return
	}
	label, _, _ := strings.Cut(host, ".")
	c.Set(FieldCompany, label, d.Name())
}

// Headings falls back to the first non-empty h1, then h2, then h3.
type Headings struct{}

// Name implements Extractor.
func (Headings) Name() string { return "headings" }

// Extract implements Extractor.
func (h Headings) Extract(c *Context) {
	if !c.Missing(FieldTitle) {
		return
	}
	c.Set(FieldTitle, firstText(c.Doc, []string{"h1", "h2", "h3"}), h.Name())
}
