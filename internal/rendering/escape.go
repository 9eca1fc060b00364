// Package rendering turns scraped text and assistant results into safe HTML fragments.
package rendering

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// StripTags removes anything that looks like an HTML tag.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// EscapeHTML escapes the five HTML special characters: & < > " '
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}
	return htmlEscaper.Replace(text)
}

// Sanitize strips tags and escapes the result for display or storage.
// Entities already present in the input are decoded before escaping so that
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	return EscapeHTML(html.UnescapeString(StripTags(text)))
}
