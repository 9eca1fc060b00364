package popup

import (
	"github.com/google/uuid"

	"github.com/jonathan/apply-assistant/internal/rendering"
	"github.com/jonathan/apply-assistant/internal/types"
)

// DescriptionPreviewLength is the collapsed length of the job description.
const DescriptionPreviewLength = 200

// Fallback text for job fields the scraper could not resolve.
const (
	TitleNotFound   = "Job Title Not Found"
	CompanyNotFound = "Company Not Found"
	NoDescription   = "No job description available."
)

// ResumeView is the résumé panel.
type ResumeView struct {
	Panel
	FileName string `json:"file_name,omitempty"`
	Action   string `json:"action"`
}

// JobView is the job details panel. Text fields are already sanitized.
type JobView struct {
	Panel
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Expanded    bool   `json:"expanded"`
	Toggle      string `json:"toggle"`
}

// MatchView is the match panel.
type MatchView struct {
	Panel
	Badge        rendering.Badge    `json:"badge"`
	MatchedCount int                `json:"matched_count"`
	MissingCount int                `json:"missing_count"`
	MatchedHTML  string             `json:"matched_html"`
	MissingHTML  string             `json:"missing_html"`
	Result       *types.MatchResult `json:"result,omitempty"`
}

// SuggestionsView is the résumé suggestions panel.
type SuggestionsView struct {
	Panel
	Set  types.SuggestionSet `json:"set"`
	HTML string              `json:"html"`
}

// CoverLetterView is the cover letter panel.
type CoverLetterView struct {
	Panel
	Draft string `json:"draft,omitempty"`
}

// Snapshot is a consistent copy of every panel.
type Snapshot struct {
	ID          string          `json:"id"`
	Resume      ResumeView      `json:"resume"`
	Job         JobView         `json:"job"`
	Match       MatchView       `json:"match"`
	Suggestions SuggestionsView `json:"suggestions"`
	CoverLetter CoverLetterView `json:"cover_letter"`
}

// Snapshot returns the current state of every panel.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	resumeAction := "Upload Resume"
	if c.resumeName != "" {
		resumeAction = "Change Resume"
	}

	job := JobView{Panel: c.jobPanel, Expanded: c.expanded, Toggle: "More"}
	if c.expanded {
		job.Toggle = "Less"
	}
	if c.jobPanel.State == StateLoaded {
		job.Title = orDefault(c.job.Title, TitleNotFound)
		job.Company = orDefault(c.job.Company, CompanyNotFound)
		job.Description = orDefault(c.job.Description, NoDescription)
		if !c.expanded {
			job.Description = preview(job.Description, DescriptionPreviewLength)
		}
	}

	match := MatchView{
		Panel:       c.matchPanel,
		Badge:       c.badge,
		MatchedHTML: c.matchedHTML,
		MissingHTML: c.missingHTML,
	}
	if c.match != nil {
		result := *c.match
		match.Result = &result
		match.MatchedCount = len(result.MatchedSkills)
		match.MissingCount = len(result.MissingSkills)
	}

	return Snapshot{
		ID:     uuid.NewString(),
		Resume: ResumeView{Panel: c.resumePanel, FileName: c.resumeName, Action: resumeAction},
		Job:    job,
		Match:  match,
		Suggestions: SuggestionsView{
			Panel: c.suggestionsPanel,
			Set:   append(types.SuggestionSet{}, c.suggestions...),
			HTML:  c.suggestionsHTML,
		},
		CoverLetter: CoverLetterView{Panel: c.coverPanel, Draft: c.coverLetter},
	}
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
