// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/apply-assistant/internal/autofill"
	"github.com/jonathan/apply-assistant/internal/popup"
	"github.com/jonathan/apply-assistant/internal/rendering"
	"github.com/jonathan/apply-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted terminal output
type Printer struct {
	out io.Writer
	// Full disables list and line truncation.
	Full bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

// plain turns stored, sanitized text back into terminal text.
func plain(s string) string {
	return html.UnescapeString(s)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if !p.Full {
			line = truncate(line, boxWidth-4)
		}
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads by runes; %-*s pads by bytes and misaligns non-ASCII text.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func (p *Printer) limit(n int) int {
	if p.Full {
		return n
	}
	return min(n, maxItemsToShow)
}

func (p *Printer) writeList(sb *strings.Builder, items []string) {
	count := p.limit(len(items))
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-count))
	}
}

// PrintResume outputs a summary of the structured résumé.
func (p *Printer) PrintResume(profile *types.ResumeProfile, fileName string) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", fileName))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	if profile.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Contact.Email))
	}
	if profile.Contact.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", profile.Contact.Phone))
	}
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
		p.writeList(&sb, profile.Skills)
		sb.WriteString("\n")
	}

	if len(profile.Experience) > 0 {
		sb.WriteString("Experience:\n")
		roles := make([]string, len(profile.Experience))
		for i, job := range profile.Experience {
			roles[i] = fmt.Sprintf("%s at %s", job.Title, job.Company)
		}
		p.writeList(&sb, roles)
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString("Education:\n")
		degrees := make([]string, len(profile.Education))
		for i, edu := range profile.Education {
			degrees[i] = fmt.Sprintf("%s, %s", edu.Degree, edu.Institution)
		}
		p.writeList(&sb, degrees)
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs the stored job details.
func (p *Printer) PrintJob(job *types.JobPosting) {
	if job == nil {
		return
	}

	description := plain(job.Description)
	if !p.Full {
		description = truncate(description, popup.DescriptionPreviewLength)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDefault(plain(job.Title), popup.TitleNotFound)))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", orDefault(plain(job.Company), popup.CompanyNotFound)))
	sb.WriteString("\n")
	sb.WriteString(wrap(orDefault(description, popup.NoDescription), boxWidth-4))

	p.printBox("JOB DETAILS", sb.String())
}

// PrintMatch outputs the match badge and the skill lists.
func (p *Printer) PrintMatch(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(rendering.MatchBadge(result).Text + "\n\n")

	sb.WriteString(fmt.Sprintf("Matched Skills (%d):\n", len(result.MatchedSkills)))
	if len(result.MatchedSkills) == 0 {
		sb.WriteString("  No matching skills found\n")
	}
	p.writeList(&sb, result.MatchedSkills)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Missing Skills (%d):\n", len(result.MissingSkills)))
	if len(result.MissingSkills) == 0 {
		sb.WriteString("  No missing skills identified\n")
	}
	p.writeList(&sb, result.MissingSkills)

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchError outputs a failed match.
func (p *Printer) PrintMatchError(message string) {
	content := fmt.Sprintf("%s\n\n%s\nTry refreshing job details", rendering.FailedBadge().Text, wrap("Error: "+message, boxWidth-4))
	p.printBox("JOB MATCH", content)
}

// PrintSuggestions outputs suggestions by category in order.
func (p *Printer) PrintSuggestions(set types.SuggestionSet) {
	if len(set) == 0 {
		p.printBox("RESUME SUGGESTIONS", "No suggestions returned.")
		return
	}

	var sb strings.Builder
	for i, category := range set {
		sb.WriteString(category.Name + ":\n")
		for _, item := range category.Items {
			sb.WriteString(wrap("• "+item, boxWidth-4))
			sb.WriteString("\n")
		}
		if i < len(set)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RESUME SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAutofill outputs which fields were filled.
func (p *Printer) PrintAutofill(report *autofill.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page:     %s\n", report.URL))
	sb.WriteString(fmt.Sprintf("Filled:   %d\n\n", report.Filled))
	for _, a := range report.Plan.Assignments {
		sb.WriteString(fmt.Sprintf("✓ %s → %s\n", a.Field, a.Selector))
	}
	for _, field := range report.Plan.Missing {
		sb.WriteString(fmt.Sprintf("⚠ %s: no matching input\n", field))
	}
	for _, field := range report.Plan.Skipped {
		sb.WriteString(fmt.Sprintf("- %s: not configured\n", field))
	}
	if report.Screenshot != "" {
		sb.WriteString(fmt.Sprintf("\nScreenshot: %s\n", report.Screenshot))
	}

	p.printBox("AUTO-FILL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStatus outputs every panel of a snapshot.
func (p *Printer) PrintStatus(snap popup.Snapshot) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Resume:       %s", snap.Resume.State))
	if snap.Resume.FileName != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", snap.Resume.FileName))
	}
	sb.WriteString("\n")
	if snap.Resume.Message != "" {
		sb.WriteString(fmt.Sprintf("              %s\n", snap.Resume.Message))
	}

	sb.WriteString(fmt.Sprintf("Job:          %s\n", snap.Job.State))
	if snap.Job.State == popup.StateLoaded {
		sb.WriteString(fmt.Sprintf("              %s\n", plain(snap.Job.Title)))
		sb.WriteString(fmt.Sprintf("              %s\n", plain(snap.Job.Company)))
	} else if snap.Job.Message != "" {
		sb.WriteString(fmt.Sprintf("              %s\n", snap.Job.Message))
	}

	sb.WriteString(fmt.Sprintf("Match:        %s\n", snap.Match.State))
	if snap.Match.Badge.Text != "" {
		sb.WriteString(fmt.Sprintf("              %s\n", snap.Match.Badge.Text))
	}

	sb.WriteString(fmt.Sprintf("Suggestions:  %s\n", snap.Suggestions.State))
	sb.WriteString(fmt.Sprintf("Cover letter: %s", snap.CoverLetter.State))

	p.printBox("STATUS", sb.String())
}

// wrap breaks text on spaces so no line exceeds width runes.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
