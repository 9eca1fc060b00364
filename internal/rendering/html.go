package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/apply-assistant/internal/types"
)

// Badge CSS classes, one per match level plus the failure state.
const (
	BadgeStrong = "match-badge match-strong"
	BadgeGood   = "match-badge match-good"
	BadgeWeak   = "match-badge match-weak"
	BadgeError  = "match-badge error"
	BadgeBusy   = "match-badge"
)

// Badge is the headline of a match result.
type Badge struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// MatchBadge renders the label and percentage for a result.
func MatchBadge(result *types.MatchResult) Badge {
	score := int(result.ATSScore)
	label := types.MatchLabel(score)

	class := BadgeWeak
	switch label {
	case types.LabelStrong:
		class = BadgeStrong
	case types.LabelGood:
		class = BadgeGood
	}

	return Badge{
		Text:  fmt.Sprintf("%s (%d%%)", label, score),
		Class: class,
	}
}

// FailedBadge is shown when no result could be computed.
func FailedBadge() Badge {
	return Badge{Text: "Match Failed", Class: BadgeError}
}

// AnalyzingBadge is shown while a match is being computed.
func AnalyzingBadge() Badge {
	return Badge{Text: "Analyzing...", Class: BadgeBusy}
}

// AnalyzingHTML is the placeholder list item while skills are analyzed.
const AnalyzingHTML = `<li class="loading-item">Analyzing skills...</li>`

// SkillListHTML renders skills as escaped list items, or the empty message.
func SkillListHTML(skills []string, emptyMessage string) string {
	if len(skills) == 0 {
		return fmt.Sprintf(`<li class="empty-item">%s</li>`, EscapeHTML(emptyMessage))
	}
	var sb strings.Builder
	for _, skill := range skills {
		sb.WriteString("<li>")
		sb.WriteString(EscapeHTML(skill))
		sb.WriteString("</li>")
	}
	return sb.String()
}

// MatchHTML renders the matched and missing skill lists.
func MatchHTML(result *types.MatchResult) (matched string, missing string) {
	matched = SkillListHTML(result.MatchedSkills, "No matching skills found")
	missing = SkillListHTML(result.MissingSkills, "No missing skills identified")
	return matched, missing
}

// MatchErrorHTML renders a failed match into both skill lists.
func MatchErrorHTML(message string) (matched string, missing string) {
	matched = fmt.Sprintf(`<li class="error-item">Error: %s</li>`, EscapeHTML(message))
	missing = `<li class="error-item">Try refreshing job details</li>`
	return matched, missing
}

// SuggestionsHTML renders each category as a bold heading followed by bulleted lines.
func SuggestionsHTML(set types.SuggestionSet) string {
	var sb strings.Builder
	for _, category := range set {
		sb.WriteString("<strong>")
		sb.WriteString(EscapeHTML(category.Name))
		sb.WriteString(":</strong><br>")
		for _, item := range category.Items {
			sb.WriteString("• ")
			sb.WriteString(EscapeHTML(item))
			sb.WriteString("<br>")
		}
	}
	return sb.String()
}
