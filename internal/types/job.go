package types

import "fmt"

// JobPosting holds the details scraped from a job page.
type JobPosting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// IsEmpty reports whether no field was resolved.
func (j *JobPosting) IsEmpty() bool {
	return j.Title == "" && j.Company == "" && j.Description == ""
}

// IsComplete reports whether every field is present.
func (j *JobPosting) IsComplete() bool {
	return j.Title != "" && j.Company != "" && j.Description != ""
}

// MatchText formats the posting for the skill-matching prompt.
func (j *JobPosting) MatchText() string {
	return fmt.Sprintf("Title: %s\nCompany: %s\nDescription: %s", j.Title, j.Company, j.Description)
}

// SuggestionText formats the posting for the suggestions prompt.
func (j *JobPosting) SuggestionText() string {
	return j.Title + " " + j.Description + " " + j.Company
}
