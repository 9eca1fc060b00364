package ingestion

import "strings"

// JoinPages concatenates page texts in page order, each followed by a newline,
// and trims the result once. Page text is kept exactly as extracted.
func JoinPages(pages []PageText) string {
	var sb strings.Builder
	for _, page := range pages {
		sb.WriteString(page.Text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
