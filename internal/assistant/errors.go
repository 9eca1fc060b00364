package assistant

import (
	"errors"
	"fmt"

	"github.com/jonathan/apply-assistant/internal/llm"
)

// Task failures. Each error text is the message shown to the user.
var (
	ErrInvalidMatchFormat    = errors.New("Could not parse API response. Try again later.")
	ErrSuggestionsUnreadable = errors.New("Error fetching suggestions. Please try again later.")
	ErrCoverLetter           = errors.New("Error generating cover letter. Please try again.")
	ErrNoCoverLetter         = errors.New("No cover letter generated. Please try again.")
)

// MatchErrorMessage renders a MatchSkills failure for the match panel.
func MatchErrorMessage(err error) string {
	var apiErr *llm.APIError
	var formatErr *llm.FormatError
	switch {
	case errors.Is(err, ErrInvalidMatchFormat):
		return ErrInvalidMatchFormat.Error()
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.As(err, &formatErr):
		return "Invalid API response format"
	default:
		return fmt.Sprintf("%v", err)
	}
}

// CoverLetterErrorMessage renders a GenerateCoverLetter failure for the draft.
func CoverLetterErrorMessage(err error) string {
	if errors.Is(err, ErrNoCoverLetter) {
		return ErrNoCoverLetter.Error()
	}
	return ErrCoverLetter.Error()
}
