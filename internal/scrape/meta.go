package scrape

import "strings"

// Meta reads Open Graph and standard meta tags.
type Meta struct{}

// Name implements Extractor.
func (Meta) Name() string { return "meta" }

// Extract implements Extractor.
func (m Meta) Extract(c *Context) {
	title := c.Doc.Find(`meta[property="og:title"], meta[name="title"]`).First().AttrOr("content", "")
	description := c.Doc.Find(`meta[property="og:description"], meta[name="description"]`).First().AttrOr("content", "")

	if c.Missing(FieldTitle) {
		c.Set(FieldTitle, strings.TrimSpace(title), m.Name())
	}
	if c.Missing(FieldDescription) {
		c.Set(FieldDescription, strings.TrimSpace(description), m.Name())
	}
}

// DocumentTitle falls back to the <title> element.
type DocumentTitle struct{}

// Name implements Extractor.
func (DocumentTitle) Name() string { return "document-title" }

// Extract implements Extractor.
func (d DocumentTitle) Extract(c *Context) {
	if !c.Missing(FieldTitle) {
		return
	}
	c.Set(FieldTitle, normalizeSpace(c.Doc.Find("title").First().Text()), d.Name())
}
