package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/ingestion"
	"github.com/jonathan/apply-assistant/internal/popup"
	"github.com/jonathan/apply-assistant/internal/types"
)

// MaxUploadBytes caps the size of an uploaded résumé.
const MaxUploadBytes = 10 << 20

// ErrorResponse is the body of a failed action.
type ErrorResponse struct {
	Error string          `json:"error"`
	State *popup.Snapshot `json:"state,omitempty"`
}

// ResumeResponse is returned by POST /resume.
type ResumeResponse struct {
	Message  string               `json:"message"`
	FileName string               `json:"file_name"`
	Pages    int                  `json:"pages"`
	Profile  *types.ResumeProfile `json:"profile"`
	State    popup.Snapshot       `json:"state"`
}

// RefreshRequest is the body of POST /job/refresh. HTML, when set, is used
// instead of fetching URL.
type RefreshRequest struct {
	URL        string `json:"url"`
	HTML       string `json:"html"`
	UseBrowser *bool  `json:"use_browser,omitempty"`
}

// JobResponse is returned by POST /job/refresh.
type JobResponse struct {
	Job   *types.JobPosting `json:"job"`
	State popup.Snapshot    `json:"state"`
}

// MatchResponse is returned by POST /match.
type MatchResponse struct {
	Result *types.MatchResult `json:"result"`
	State  popup.Snapshot     `json:"state"`
}

// SuggestionsResponse is returned by POST /suggestions.
type SuggestionsResponse struct {
	Suggestions types.SuggestionSet `json:"suggestions"`
	State       popup.Snapshot      `json:"state"`
}

// CoverLetterResponse is returned by POST /cover-letter.
type CoverLetterResponse struct {
	CoverLetter string         `json:"cover_letter"`
	State       popup.Snapshot `json:"state"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.controller.Snapshot())
}

// handleUploadResume reads the multipart field "file".
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}
	part, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing form field: file")
		return
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, ingestion.ErrFileRead.Error())
		return
	}

	result, err := s.controller.UploadResume(r.Context(), ingestion.ResumeFile{
		Name:         header.Filename,
		Data:         data,
		DeclaredType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		s.failure(w, err, ingestion.UserMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, ResumeResponse{
		Message:  result.Message,
		FileName: result.FileName,
		Pages:    result.Pages,
		Profile:  result.Profile,
		State:    s.controller.Snapshot(),
	})
}

func (s *Server) handleRefreshJob(w http.ResponseWriter, r *http.Request) {
	src, err := s.decodeRefresh(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job, err := s.controller.RefreshJob(r.Context(), src)
	if err != nil {
		s.failure(w, err, refreshMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, JobResponse{Job: job, State: s.controller.Snapshot()})
}

// handleRefreshJobStream refreshes the job and streams panel state changes
// as "state" events until a "complete" or "error" event.
func (s *Server) handleRefreshJobStream(w http.ResponseWriter, r *http.Request) {
	src, err := s.decodeRefresh(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.controller.RefreshJob(r.Context(), src)
		done <- err
	}()

	var last string
	emit := func() popup.Snapshot {
		snap := s.controller.Snapshot()
		if key := progressKey(snap); key != last {
			last = key
			if err := sse.WriteEvent("state", snap); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		}
		return snap
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	emit()
	for {
		select {
		case err := <-done:
			snap := emit()
			if err != nil {
				sse.WriteError(refreshMessage(err))
				return
			}
			sse.WriteComplete(snap.ID, "completed")
			return
		case <-ticker.C:
			emit()
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) handleToggleDescription(w http.ResponseWriter, _ *http.Request) {
	expanded := s.controller.ToggleDescription()
	snap := s.controller.Snapshot()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"expanded":    expanded,
		"toggle":      snap.Job.Toggle,
		"description": snap.Job.Description,
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	result, err := s.controller.ComputeMatch(r.Context())
	if err != nil {
		s.failure(w, err, s.controller.Snapshot().Match.Message)
		return
	}
	s.jsonResponse(w, http.StatusOK, MatchResponse{Result: result, State: s.controller.Snapshot()})
}

// handleSuggestions answers 200 with an empty set when the model reply
// carried nothing usable.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	set, err := s.controller.OptimizeResume(r.Context())
	if err != nil {
		s.failure(w, err, s.controller.Snapshot().Suggestions.Message)
		return
	}
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{Suggestions: set, State: s.controller.Snapshot()})
}

func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	letter, err := s.controller.GenerateCoverLetter(r.Context())
	if err != nil {
		s.failure(w, err, s.controller.Snapshot().CoverLetter.Message)
		return
	}
	s.jsonResponse(w, http.StatusOK, CoverLetterResponse{CoverLetter: letter, State: s.controller.Snapshot()})
}

// handleDownloadCoverLetter serves the current draft as a text attachment.
func (s *Server) handleDownloadCoverLetter(w http.ResponseWriter, _ *http.Request) {
	draft := s.controller.CoverLetter()
	if draft == "" {
		s.errorResponse(w, HTTPStatus(popup.ErrNothingToSave), popup.ErrNothingToSave.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", popup.DefaultCoverLetterFile))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, draft); err != nil {
		log.Printf("Error writing cover letter: %v", err)
	}
}

func (s *Server) decodeRefresh(r *http.Request) (fetch.Source, error) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return fetch.Source{}, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if req.URL == "" && req.HTML == "" {
		return fetch.Source{}, &ErrValidation{Field: "url", Message: "url or html is required"}
	}

	useBrowser := s.useBrowser
	if req.UseBrowser != nil {
		useBrowser = *req.UseBrowser
	}
	return fetch.Source{
		URL:            req.URL,
		HTML:           req.HTML,
		UseBrowser:     useBrowser,
		BrowserTimeout: s.browserTimeout,
		Verbose:        s.verbose,
	}, nil
}

func refreshMessage(err error) string {
	if errors.Is(err, popup.ErrNoSource) {
		return popup.ErrNoSource.Error()
	}
	return popup.ErrJobExtraction.Error()
}

// progressKey changes whenever a panel touched by a refresh changes.
func progressKey(snap popup.Snapshot) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", snap.Job.State, snap.Job.Message, snap.Match.State, snap.Match.Message, snap.Match.Badge.Text)
}
