package ingestion

import (
	"errors"
	"fmt"
)

// Failure sites during résumé upload. Each carries the message shown to the user.
var (
	ErrUnsupportedFileType = errors.New("Please upload a PDF file")
	ErrFileRead            = errors.New("Error reading file. Please try again.")
	ErrExtraction          = errors.New("Error extracting text from PDF.")
	ErrNoText              = errors.New("Could not extract text from PDF.")
	ErrAIUnavailable       = errors.New("Failed to process resume.")
	ErrInvalidFormat       = errors.New("Error: Invalid response format from AI.")
	ErrProcessing          = errors.New("Error processing resume.")
)

// SuccessMessage is shown once a résumé has been structured and stored.
const SuccessMessage = "Resume processed successfully!"

// Error is an upload failure: Kind is one of the sentinels above.
type Error struct {
	Kind  error
	File  string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume %s: %v: %v", e.File, e.Kind, e.Cause)
	}
	return fmt.Sprintf("resume %s: %v", e.File, e.Kind)
}

// Is matches the failure kind so callers can use errors.Is(err, ErrNoText).
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage is the fixed text for the failure site.
func (e *Error) UserMessage() string {
	return e.Kind.Error()
}

// UserMessage returns the text to show for any upload error.
func UserMessage(err error) string {
	var ingestErr *Error
	if errors.As(err, &ingestErr) {
		return ingestErr.UserMessage()
	}
	return ErrProcessing.Error()
}
