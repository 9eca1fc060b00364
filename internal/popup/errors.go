package popup

import "errors"

// Missing prerequisites. These are guidance rather than failures.
var (
	ErrMissingResume = errors.New("no resume stored")
	ErrMissingJob    = errors.New("no job details stored")
)

// Fixed messages for failures outside the AI calls.
var (
	ErrNoSource      = errors.New("No job page given. Pass a URL or an HTML file.")
	ErrJobExtraction = errors.New("Failed to extract job details. Try another page.")
	ErrNothingToSave = errors.New("No cover letter to download.")
)

// Guidance shown when an operation is not ready to run.
const (
	msgUploadFirst       = "Please upload a resume first to see job match results."
	msgRefreshJobFirst   = "Please refresh job details first."
	msgResumeAndJobFirst = "Please upload your resume and refresh job details first."
)

// NotReadyError reports a missing prerequisite. No AI call was made.
type NotReadyError struct {
	Missing error
	Message string
}

func (e *NotReadyError) Error() string {
	return e.Message
}

func (e *NotReadyError) Unwrap() error {
	return e.Missing
}

// IsNotReady reports whether err is a missing-prerequisite error.
func IsNotReady(err error) bool {
	var notReady *NotReadyError
	return errors.As(err, &notReady)
}
