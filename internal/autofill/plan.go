package autofill

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Assignment is one value to type into the element matched by Selector.
type Assignment struct {
	Field    Field  `json:"field"`
	Selector string `json:"selector"`
	Value    string `json:"value"`
}

// Plan is the outcome of matching the field table against a page.
type Plan struct {
	Assignments []Assignment `json:"assignments"`
	// Missing lists fields with no matching input on the page.
	Missing []Field `json:"missing,omitempty"`
	// Skipped lists fields with no configured value.
	Skipped []Field `json:"skipped,omitempty"`
}

// PlanDocument picks the first matching selector for each field.
func PlanDocument(doc *goquery.Document, id Identity) Plan {
	var plan Plan
	for _, entry := range FieldTable {
		value := id.Value(entry.Field)
		if value == "" {
			plan.Skipped = append(plan.Skipped, entry.Field)
			continue
		}
		selector := firstMatch(doc, entry.Selectors)
		if selector == "" {
			plan.Missing = append(plan.Missing, entry.Field)
			continue
		}
		plan.Assignments = append(plan.Assignments, Assignment{
			Field:    entry.Field,
			Selector: selector,
			Value:    value,
		})
	}
	return plan
}

// PlanHTML parses html and plans the fill.
func PlanHTML(html string, id Identity) (Plan, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Plan{}, fmt.Errorf("failed to parse form page: %w", err)
	}
	return PlanDocument(doc, id), nil
}

func firstMatch(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if doc.Find(selector).Length() > 0 {
			return selector
		}
	}
	return ""
}

// Script returns JavaScript that applies the plan in a page and evaluates to
// the number of inputs it filled. Each fill dispatches a bubbling input event
// so framework-bound forms see the change.
func (p Plan) Script() string {
	assignments := p.Assignments
	if assignments == nil {
		assignments = []Assignment{}
	}
	encoded, err := json.Marshal(assignments)
	if err != nil {
		encoded = []byte("[]")
	}
	return fmt.Sprintf(`(() => {
  const assignments = %s;
  let filled = 0;
  for (const a of assignments) {
    const el = document.querySelector(a.selector);
    if (!el) continue;
    el.value = a.value;
    el.dispatchEvent(new Event("input", { bubbles: true }));
    filled++;
  }
  return filled;
})()`, encoded)
}
