package assistant

import (
	"fmt"
	"strings"

	"github.com/jonathan/apply-assistant/internal/types"
)

// coverLetterDescriptionLimit caps the description sent with the cover letter prompt.
const coverLetterDescriptionLimit = 500

// FormatResumeText renders a profile as the plain text used in the match prompt.
func FormatResumeText(p *types.ResumeProfile) string {
	var sb strings.Builder

	name := p.Name
	if name == "" {
		name = "Not provided"
	}
	fmt.Fprintf(&sb, "Name: %s\n", name)

	if p.Contact.Email != "" || p.Contact.Phone != "" {
		fmt.Fprintf(&sb, "Contact: %s ", p.Contact.Email)
		if p.Contact.Phone != "" {
			fmt.Fprintf(&sb, "| %s ", p.Contact.Phone)
		}
		sb.WriteString("\n")
	}

	if len(p.Skills) > 0 {
		fmt.Fprintf(&sb, "\nSkills: %s\n", strings.Join(p.Skills, ", "))
	}

	if len(p.Experience) > 0 {
		sb.WriteString("\nWork Experience:\n")
		for _, job := range p.Experience {
			fmt.Fprintf(&sb, "- %s at %s", orDefault(job.Title, "Role"), orDefault(job.Company, "Company"))
			if job.Duration != "" {
				fmt.Fprintf(&sb, " (%s)", job.Duration)
			}
			sb.WriteString("\n")
			if job.Description != "" {
				fmt.Fprintf(&sb, "  %s\n", job.Description)
			}
		}
	}

	if len(p.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, edu := range p.Education {
			fmt.Fprintf(&sb, "- %s from %s", orDefault(edu.Degree, "Degree"), orDefault(edu.Institution, "Institution"))
			if edu.Year != "" {
				fmt.Fprintf(&sb, " (%s)", edu.Year)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// CoverLetterJobText describes the job for the cover letter prompt.
func CoverLetterJobText(job types.JobPosting) string {
	return fmt.Sprintf("Position: %s and Company: %s and Job Description: %s",
		job.Title, job.Company, truncateRunes(job.Description, coverLetterDescriptionLimit))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
