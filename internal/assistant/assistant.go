// Package assistant implements the four model tasks: résumé structuring,
// skill matching, improvement suggestions and cover letters.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/apply-assistant/internal/llm"
	"github.com/jonathan/apply-assistant/internal/prompts"
	"github.com/jonathan/apply-assistant/internal/schemas"
	"github.com/jonathan/apply-assistant/internal/types"
)

// Prompt keys in prompts.AssistantFile.
const (
	promptStructureResume = "structure-resume"
	promptMatchSkills     = "match-skills"
	promptSuggestions     = "suggest-improvements"
	promptCoverLetter     = "cover-letter"
)

// Assistant issues one model call per task.
type Assistant struct {
	client  llm.Client
	tier    llm.ModelTier
	Verbose bool
}

// New returns an Assistant using the standard model tier.
func New(client llm.Client) *Assistant {
	return &Assistant{client: client, tier: llm.TierStandard}
}

// WithTier returns a copy that calls a different model tier.
func (a *Assistant) WithTier(tier llm.ModelTier) *Assistant {
	next := *a
	next.tier = tier
	return &next
}

func (a *Assistant) generate(ctx context.Context, task string, data map[string]string) (string, error) {
	prompt, err := prompts.Render(prompts.AssistantFile, task, data)
	if err != nil {
		return "", err
	}
	if a.Verbose {
		log.Printf("[VERBOSE] %s: sending %d-char prompt to %s", task, len(prompt), a.client.GetModel(a.tier))
	}
	text, err := a.client.GenerateContent(ctx, prompt, a.tier)
	if err != nil {
		return "", err
	}
	if a.Verbose {
		log.Printf("[VERBOSE] %s: received %d chars", task, len(text))
	}
	return text, nil
}

// StructureResume asks the model to turn résumé text into a profile.
// A reply that is not a JSON object yields *llm.ParseError.
func (a *Assistant) StructureResume(ctx context.Context, text string) (*types.ResumeProfile, error) {
	reply, err := a.generate(ctx, promptStructureResume, map[string]string{"ResumeText": text})
	if err != nil {
		return nil, err
	}

	decoded, err := llm.DecodeJSON(reply)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate(schemas.ResumeProfile, string(decoded.JSON)); err != nil {
		return nil, &llm.ParseError{Message: "resume reply is not a profile object", Text: reply, Cause: err}
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal(decoded.JSON, &profile); err != nil {
		return nil, &llm.ParseError{Message: "resume reply has unexpected field types", Text: reply, Cause: err}
	}
	if a.Verbose {
		log.Printf("[VERBOSE] Structured resume via %s decode: %d skills, %d roles", decoded.Tier, len(profile.Skills), len(profile.Experience))
	}
	return &profile, nil
}

// MatchSkills compares a résumé with a job. Replies missing any of
// matched_skills, missing_skills or ATS_score yield ErrInvalidMatchFormat.
func (a *Assistant) MatchSkills(ctx context.Context, job types.JobPosting, resume *types.ResumeProfile) (*types.MatchResult, error) {
	reply, err := a.generate(ctx, promptMatchSkills, map[string]string{
		"JobText":    job.MatchText(),
		"ResumeText": FormatResumeText(resume),
	})
	if err != nil {
		return nil, err
	}

	decoded, err := llm.DecodeJSON(reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatchFormat, err)
	}
	if err := schemas.Validate(schemas.MatchResult, string(decoded.JSON)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatchFormat, err)
	}

	var result types.MatchResult
	if err := json.Unmarshal(decoded.JSON, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatchFormat, err)
	}
	result.Normalize()
	return &result, nil
}

// SuggestImprovements asks for résumé changes grouped by category. The set is
// never nil. Transport failures degrade to an empty set with no error; a reply
// that cannot be read returns an empty set and ErrSuggestionsUnreadable.
func (a *Assistant) SuggestImprovements(ctx context.Context, resumeJSON string, job types.JobPosting) (types.SuggestionSet, error) {
	empty := types.SuggestionSet{}

	reply, err := a.generate(ctx, promptSuggestions, map[string]string{
		"JobText":    job.SuggestionText(),
		"ResumeJSON": resumeJSON,
	})
	if err != nil {
		log.Printf("Suggestions request failed: %v", err)
		return empty, nil
	}

	decoded, err := llm.DecodeJSON(reply)
	if err != nil {
		log.Printf("Suggestions reply had no JSON: %v", err)
		return empty, nil
	}
	if err := schemas.Validate(schemas.Suggestions, string(decoded.JSON)); err != nil {
		log.Printf("Suggestions reply has unexpected shape: %v", err)
		return empty, fmt.Errorf("%w: %w", ErrSuggestionsUnreadable, err)
	}

	var body struct {
		Improvements types.SuggestionSet `json:"improvements"`
	}
	if err := json.Unmarshal(decoded.JSON, &body); err != nil {
		log.Printf("Suggestions reply could not be decoded: %v", err)
		return empty, fmt.Errorf("%w: %w", ErrSuggestionsUnreadable, err)
	}
	if body.Improvements == nil {
		return empty, nil
	}
	return body.Improvements, nil
}

// GenerateCoverLetter drafts a cover letter. The reply text is returned verbatim.
func (a *Assistant) GenerateCoverLetter(ctx context.Context, job types.JobPosting, resumeJSON string) (string, error) {
	reply, err := a.generate(ctx, promptCoverLetter, map[string]string{
		"JobText":    CoverLetterJobText(job),
		"ResumeJSON": resumeJSON,
	})
	if err != nil {
		var formatErr *llm.FormatError
		if errors.As(err, &formatErr) {
			return "", fmt.Errorf("%w: %w", ErrNoCoverLetter, err)
		}
		return "", fmt.Errorf("%w: %w", ErrCoverLetter, err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", ErrNoCoverLetter
	}
	return reply, nil
}
