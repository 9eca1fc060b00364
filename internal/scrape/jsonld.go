package scrape

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/apply-assistant/internal/types"
)

// JSONLD reads schema.org JobPosting blocks. When one is found its fields are
// used as-is and the chain stops.
type JSONLD struct{}

// Name implements Extractor.
func (JSONLD) Name() string { return "json-ld" }

type jobPostingLD struct {
	Title              types.FlexString `json:"title"`
	Description        types.FlexString `json:"description"`
	HiringOrganization json.RawMessage  `json:"hiringOrganization"`
}

// Extract implements Extractor.
func (j JSONLD) Extract(c *Context) {
	var found *jobPostingLD
	c.Doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		raw := findJobPosting(data)
		if raw == nil {
			return true
		}
		encoded, err := json.Marshal(raw)
		if err != nil {
			return true
		}
		var posting jobPostingLD
		if err := json.Unmarshal(encoded, &posting); err != nil {
			return true
		}
		found = &posting
		return false
	})
	if found == nil {
		return
	}

	c.Set(FieldTitle, string(found.Title), j.Name())
	c.Set(FieldCompany, organizationName(found.HiringOrganization), j.Name())
	c.Set(FieldDescription, string(found.Description), j.Name())
	c.Stop()
}

// findJobPosting returns the first JobPosting object in a JSON-LD value: the
// value itself, an element of a top-level array, or a node of @graph.
func findJobPosting(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		if isJobPostingType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"].([]any); ok {
			return findJobPosting(graph)
		}
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok && isJobPostingType(obj["@type"]) {
				return obj
			}
		}
	}
	return nil
}

func isJobPostingType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

// organizationName accepts {"name": ...} or a bare string.
func organizationName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var org struct {
		Name types.FlexString `json:"name"`
	}
	if err := json.Unmarshal(raw, &org); err == nil {
		return strings.TrimSpace(string(org.Name))
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return strings.TrimSpace(name)
	}
	return ""
}
