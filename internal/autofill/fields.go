// Package autofill fills application forms with the candidate's identity.
// Fields are located by attribute substring selectors, tried in order.
package autofill

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/apply-assistant/internal/types"
)

// Field is one identity value that can be filled.
type Field string

const (
	FieldName      Field = "name"
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldLinkedIn  Field = "linkedin"
)

// FieldSpec lists the selectors for a field in priority order.
type FieldSpec struct {
	Field     Field
	Selectors []string
}

// inputSelectors expands each token into name, id and placeholder selectors.
func inputSelectors(tokens ...[2]string) []string {
	out := make([]string, 0, len(tokens)*3)
	for _, t := range tokens {
		attr, placeholder := t[0], t[1]
		out = append(out,
			fmt.Sprintf(`input[name*=%q]`, attr),
			fmt.Sprintf(`input[id*=%q]`, attr),
			fmt.Sprintf(`input[placeholder*=%q]`, placeholder),
		)
	}
	return out
}

// FieldTable is the fill order. A generic selector such as input[name*="name"]
// can match the same element as a more specific field later in the table.
var FieldTable = []FieldSpec{
	{FieldName, inputSelectors(
		[2]string{"name", "Full Name"},
		[2]string{"fullname", "Complete Name"},
		[2]string{"user_name", "User Name"},
		[2]string{"applicant_name", "Applicant Name"},
		[2]string{"display_name", "Display Name"},
	)},
	{FieldFirstName, inputSelectors(
		[2]string{"first", "First"},
		[2]string{"fname", "FName"},
		[2]string{"given", "Given Name"},
		[2]string{"user_first", "User First"},
	)},
	{FieldLastName, inputSelectors(
		[2]string{"last", "Last"},
		[2]string{"lname", "LName"},
		[2]string{"surname", "Surname"},
		[2]string{"family", "Family Name"},
	)},
	{FieldEmail, inputSelectors(
		[2]string{"email", "Email"},
		[2]string{"mail", "Mail"},
		[2]string{"contact_email", "Contact Email"},
		[2]string{"applicant_email", "Applicant Email"},
	)},
	{FieldPhone, inputSelectors(
		[2]string{"phone", "Phone"},
		[2]string{"mobile", "Mobile"},
		[2]string{"contact_number", "Contact Number"},
		[2]string{"tel", "Tel"},
		[2]string{"user_phone", "User Phone"},
	)},
	{FieldLinkedIn, inputSelectors(
		[2]string{"linkedin", "LinkedIn"},
		[2]string{"linkedin_profile", "LinkedIn Profile"},
		[2]string{"li_profile", "LI Profile"},
		[2]string{"applicant_linkedin", "Applicant LinkedIn"},
	)},
}

// Identity holds the values typed into forms. It comes from configuration.
type Identity struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name,omitempty"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin" validate:"omitempty,url"`
}

// Validate checks the identity's formats.
func (i Identity) Validate() error {
	validate := validator.New()
	return validate.Struct(i)
}

// IsEmpty reports whether no identity was configured.
func (i Identity) IsEmpty() bool {
	return i == Identity{}
}

// Value returns the text for a field. The full name defaults to first and
// last name joined by a space.
func (i Identity) Value(field Field) string {
	switch field {
	case FieldName:
		if i.FullName != "" {
			return i.FullName
		}
		return strings.TrimSpace(i.FirstName + " " + i.LastName)
	case FieldFirstName:
		return i.FirstName
	case FieldLastName:
		return i.LastName
	case FieldEmail:
		return i.Email
	case FieldPhone:
		return i.Phone
	case FieldLinkedIn:
		return i.LinkedIn
	}
	return ""
}

// IdentityFromProfile derives an identity from a stored résumé. The first
// word of the name is the first name; the rest is the last name.
func IdentityFromProfile(profile *types.ResumeProfile) Identity {
	if profile == nil {
		return Identity{}
	}
	id := Identity{
		FullName: strings.TrimSpace(profile.Name),
		Email:    profile.Contact.Email,
		Phone:    string(profile.Contact.Phone),
	}
	if parts := strings.Fields(id.FullName); len(parts) > 0 {
		id.FirstName = parts[0]
		id.LastName = strings.Join(parts[1:], " ")
	}
	return id
}
