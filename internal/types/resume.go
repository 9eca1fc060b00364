// Package types provides the data model shared by the assistant: the structured
// résumé, the scraped job posting, match results and improvement suggestions.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Contact holds the candidate's contact details.
type Contact struct {
	Email string     `json:"email" validate:"omitempty,email"`
	Phone FlexString `json:"phone"`
}

// WorkExperience is one role on the résumé.
type WorkExperience struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Duration    FlexString `json:"duration"`
	Description string     `json:"description"`
}

// Education is one degree on the résumé.
type Education struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	Year        FlexString `json:"year"`
}

// ResumeProfile is the structured form of an uploaded résumé.
// It is replaced wholesale on every upload.
type ResumeProfile struct {
	Name       string           `json:"name"`
	Contact    Contact          `json:"contact"`
	Skills     StringList       `json:"skills"`
	Experience []WorkExperience `json:"experience"`
	Education  []Education      `json:"education"`
}

// Validate checks field formats that the model is known to get wrong.
// It never rejects missing fields.
func (r *ResumeProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// IsEmpty reports whether nothing useful was extracted.
func (r *ResumeProfile) IsEmpty() bool {
	return r.Name == "" && r.Contact.Email == "" && len(r.Skills) == 0 &&
		len(r.Experience) == 0 && len(r.Education) == 0
}
