package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/apply-assistant/internal/assistant"
	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/ingestion"
	"github.com/jonathan/apply-assistant/internal/llm"
	"github.com/jonathan/apply-assistant/internal/popup"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var notReady *popup.NotReadyError
	var apiErr *llm.APIError
	var formatErr *llm.FormatError
	var fetchErr *fetch.Error

	switch {
	case errors.As(err, &validation),
		errors.Is(err, popup.ErrNoSource),
		errors.Is(err, ingestion.ErrFileRead):
		return http.StatusBadRequest
	case errors.As(err, &notReady):
		return http.StatusConflict
	case errors.Is(err, popup.ErrNothingToSave):
		return http.StatusNotFound
	case errors.Is(err, ingestion.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrExtraction), errors.Is(err, ingestion.ErrNoText):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, popup.ErrJobExtraction),
		errors.As(err, &fetchErr),
		errors.Is(err, ingestion.ErrAIUnavailable),
		errors.Is(err, ingestion.ErrInvalidFormat),
		errors.Is(err, assistant.ErrInvalidMatchFormat),
		errors.Is(err, assistant.ErrSuggestionsUnreadable),
		errors.Is(err, assistant.ErrCoverLetter),
		errors.Is(err, assistant.ErrNoCoverLetter),
		errors.As(err, &apiErr),
		errors.As(err, &formatErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
