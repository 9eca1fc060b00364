// Package popup holds the assistant's panel state and runs each user action
// against the store and the AI tasks.
package popup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/apply-assistant/internal/assistant"
	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/ingestion"
	"github.com/jonathan/apply-assistant/internal/rendering"
	"github.com/jonathan/apply-assistant/internal/scrape"
	"github.com/jonathan/apply-assistant/internal/store"
	"github.com/jonathan/apply-assistant/internal/types"
)

// DefaultCoverLetterFile is the file name used when saving a draft.
const DefaultCoverLetterFile = "cover_letter.txt"

// Status lines.
const (
	msgResumeLoaded    = "Resume loaded from storage."
	msgReadingResume   = "Reading resume..."
	msgLoadingJob      = "Loading..."
	msgAnalyzing       = "Analyzing..."
	msgSuggesting      = "Loading suggestions..."
	msgGeneratingDraft = "Generating your personalized cover letter..."
)

// AI is the set of model tasks the controller runs.
type AI interface {
	StructureResume(ctx context.Context, text string) (*types.ResumeProfile, error)
	MatchSkills(ctx context.Context, job types.JobPosting, resume *types.ResumeProfile) (*types.MatchResult, error)
	SuggestImprovements(ctx context.Context, resumeJSON string, job types.JobPosting) (types.SuggestionSet, error)
	GenerateCoverLetter(ctx context.Context, job types.JobPosting, resumeJSON string) (string, error)
}

// PageLoader fetches the HTML of a job page.
type PageLoader interface {
	Load(ctx context.Context, src fetch.Source) (*fetch.Result, error)
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Extractor ingestion.PageExtractor
	Loader    PageLoader
	Scraper   *scrape.Scraper
	Verbose   bool
}

// Controller owns the panel state. It is safe for concurrent use; identical
// operations already in flight are shared rather than repeated.
type Controller struct {
	repo     *store.Repository
	ai       AI
	loader   PageLoader
	scraper  *scrape.Scraper
	ingestor *ingestion.Ingestor
	verbose  bool

	flights singleflight.Group

	mu               sync.Mutex
	resumePanel      Panel
	jobPanel         Panel
	matchPanel       Panel
	suggestionsPanel Panel
	coverPanel       Panel
	resumeName       string
	job              types.JobPosting
	expanded         bool
	match            *types.MatchResult
	badge            rendering.Badge
	matchedHTML      string
	missingHTML      string
	suggestions      types.SuggestionSet
	suggestionsHTML  string
	coverLetter      string
}

// New wires a Controller over a repository and the AI tasks.
func New(repo *store.Repository, ai AI, opts Options) *Controller {
	loader := opts.Loader
	if loader == nil {
		loader = fetch.NewLoader()
	}
	scraper := opts.Scraper
	if scraper == nil {
		scraper = scrape.New()
		scraper.Verbose = opts.Verbose
	}
	ingestor := ingestion.NewIngestor(opts.Extractor, ai, repo)
	ingestor.Verbose = opts.Verbose

	return &Controller{
		repo:             repo,
		ai:               ai,
		loader:           loader,
		scraper:          scraper,
		ingestor:         ingestor,
		verbose:          opts.Verbose,
		resumePanel:      newPanel(),
		jobPanel:         newPanel(),
		matchPanel:       newPanel(),
		suggestionsPanel: newPanel(),
		coverPanel:       newPanel(),
	}
}

// Open restores panels from the store. When no job is stored and src is not
// nil, the job is refreshed from src.
func (c *Controller) Open(ctx context.Context, src *fetch.Source) error {
	var errs []error

	_, name, err := c.repo.LoadResume(ctx)
	switch {
	case err == nil:
		c.mu.Lock()
		c.resumeName = name
		c.resumePanel.SetLoaded(msgResumeLoaded)
		c.mu.Unlock()
	case !errors.Is(err, store.ErrNotFound):
		log.Printf("Could not load stored resume: %v", err)
		errs = append(errs, err)
	}

	result, err := c.repo.LoadMatch(ctx)
	switch {
	case err == nil:
		c.mu.Lock()
		c.showMatch(result)
		c.mu.Unlock()
	case !errors.Is(err, store.ErrNotFound):
		log.Printf("Could not load last match result: %v", err)
		errs = append(errs, err)
	}

	job, err := c.repo.LoadJob(ctx)
	switch {
	case err == nil:
		c.mu.Lock()
		c.job = *job
		c.expanded = false
		c.jobPanel.SetLoaded("")
		c.mu.Unlock()
	case errors.Is(err, store.ErrNotFound):
		if src != nil {
			if _, err := c.RefreshJob(ctx, *src); err != nil {
				errs = append(errs, err)
			}
		}
	default:
		log.Printf("Could not load stored job details: %v", err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// UploadResume ingests a résumé file and replaces the stored profile. Only
// uploads of the same name and bytes share an in-flight call.
func (c *Controller) UploadResume(ctx context.Context, file ingestion.ResumeFile) (*ingestion.Result, error) {
	sum := sha256.Sum256(file.Data)
	key := "resume:" + file.Name + "\x00" + hex.EncodeToString(sum[:])
	v, err, _ := c.flights.Do(key, func() (any, error) {
		return c.uploadResume(ctx, file)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ingestion.Result), nil
}

func (c *Controller) uploadResume(ctx context.Context, file ingestion.ResumeFile) (*ingestion.Result, error) {
	c.mu.Lock()
	c.resumePanel.SetLoading(msgReadingResume)
	c.mu.Unlock()

	result, err := c.ingestor.Ingest(ctx, file)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		log.Printf("Resume upload failed: %v", err)
		c.resumePanel.SetError(ingestion.UserMessage(err))
		return nil, err
	}
	c.resumeName = result.FileName
	c.resumePanel.SetLoaded(result.Message)
	return result, nil
}

// RefreshJob loads and scrapes a job page, stores the sanitized fields and
// then computes the match when a résumé is stored. A failed match is shown in
// the match panel and does not fail the refresh.
func (c *Controller) RefreshJob(ctx context.Context, src fetch.Source) (*types.JobPosting, error) {
	v, err, _ := c.flights.Do("job:"+src.URL+"\x00"+src.HTMLFile+"\x00"+src.HTML, func() (any, error) {
		return c.refreshJob(ctx, src)
	})
	if err != nil {
		return nil, err
	}
	job := *v.(*types.JobPosting)
	return &job, nil
}

func (c *Controller) refreshJob(ctx context.Context, src fetch.Source) (*types.JobPosting, error) {
	if src.URL == "" && src.HTMLFile == "" && src.HTML == "" {
		c.mu.Lock()
		c.jobPanel.SetError(ErrNoSource.Error())
		c.mu.Unlock()
		return nil, ErrNoSource
	}

	c.mu.Lock()
	c.jobPanel.SetLoading(msgLoadingJob)
	c.mu.Unlock()

	src.Verbose = src.Verbose || c.verbose
	page, err := c.loader.Load(ctx, src)
	if err != nil {
		log.Printf("Job page could not be loaded: %v", err)
		c.mu.Lock()
		c.jobPanel.SetError(ErrJobExtraction.Error())
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrJobExtraction, err)
	}

	scraped := c.scraper.Scrape(scrape.Page{URL: page.URL, HTML: page.HTML})
	if c.verbose {
		log.Printf("[VERBOSE] Scraped %s via %s: sources %v", page.URL, page.Via, scraped.Sources)
	}

	job := types.JobPosting{
		Title:       rendering.Sanitize(scraped.Job.Title),
		Company:     rendering.Sanitize(scraped.Job.Company),
		Description: rendering.Sanitize(scraped.Job.Description),
	}
	if err := c.repo.SaveJob(ctx, job); err != nil {
		c.mu.Lock()
		c.jobPanel.SetError(ErrJobExtraction.Error())
		c.mu.Unlock()
		return nil, fmt.Errorf("failed to store job details: %w", err)
	}

	c.mu.Lock()
	c.job = job
	c.expanded = false
	c.jobPanel.SetLoaded("")
	c.mu.Unlock()

	profile, _, err := c.repo.LoadResume(ctx)
	switch {
	case err == nil:
		// The prompt gets the scraped text before sanitizing.
		if _, err := c.computeMatch(ctx, scraped.Job, profile); err != nil {
			log.Printf("Match after refresh failed: %v", err)
		}
	case errors.Is(err, store.ErrNotFound):
		c.mu.Lock()
		c.showMatchError(msgUploadFirst)
		c.mu.Unlock()
	default:
		log.Printf("Could not load stored resume: %v", err)
	}

	return &job, nil
}

// ComputeMatch scores the stored résumé against the stored job.
func (c *Controller) ComputeMatch(ctx context.Context) (*types.MatchResult, error) {
	v, err, _ := c.flights.Do("match", func() (any, error) {
		profile, err := c.requireResume(ctx, msgUploadFirst)
		if err == nil {
			var job *types.JobPosting
			if job, err = c.requireJob(ctx, msgRefreshJobFirst, false); err == nil {
				return c.computeMatch(ctx, *job, profile)
			}
		}
		if IsNotReady(err) {
			c.mu.Lock()
			c.showMatchError(err.Error())
			c.mu.Unlock()
		}
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	result := *v.(*types.MatchResult)
	return &result, nil
}

func (c *Controller) computeMatch(ctx context.Context, job types.JobPosting, profile *types.ResumeProfile) (*types.MatchResult, error) {
	c.mu.Lock()
	c.matchPanel.SetLoading(msgAnalyzing)
	c.badge = rendering.AnalyzingBadge()
	c.matchedHTML = rendering.AnalyzingHTML
	c.missingHTML = rendering.AnalyzingHTML
	c.mu.Unlock()

	result, err := c.ai.MatchSkills(ctx, job, profile)
	if err != nil {
		c.mu.Lock()
		c.showMatchError(assistant.MatchErrorMessage(err))
		c.mu.Unlock()
		return nil, err
	}

	if err := c.repo.SaveMatch(ctx, result); err != nil {
		log.Printf("Could not store match result: %v", err)
	}

	c.mu.Lock()
	c.showMatch(result)
	c.mu.Unlock()
	return result, nil
}

// showMatch must be called with c.mu held.
func (c *Controller) showMatch(result *types.MatchResult) {
	c.match = result
	c.badge = rendering.MatchBadge(result)
	c.matchedHTML, c.missingHTML = rendering.MatchHTML(result)
	c.matchPanel.SetLoaded(c.badge.Text)
}

// showMatchError must be called with c.mu held.
func (c *Controller) showMatchError(message string) {
	c.match = nil
	c.badge = rendering.FailedBadge()
	c.matchedHTML, c.missingHTML = rendering.MatchErrorHTML(message)
	c.matchPanel.SetError(message)
}

// OptimizeResume asks for résumé improvements for the stored job. The
// returned set is never nil.
func (c *Controller) OptimizeResume(ctx context.Context) (types.SuggestionSet, error) {
	v, err, _ := c.flights.Do("suggestions", func() (any, error) {
		return c.optimizeResume(ctx)
	})
	set, _ := v.(types.SuggestionSet)
	if set == nil {
		set = types.SuggestionSet{}
	}
	return set, err
}

func (c *Controller) optimizeResume(ctx context.Context) (types.SuggestionSet, error) {
	if _, err := c.requireResume(ctx, msgResumeAndJobFirst); err != nil {
		c.setSuggestionsError(err.Error())
		return nil, err
	}
	job, err := c.requireJob(ctx, msgResumeAndJobFirst, false)
	if err != nil {
		c.setSuggestionsError(err.Error())
		return nil, err
	}
	resumeJSON, err := c.repo.ResumeJSON(ctx)
	if err != nil {
		c.setSuggestionsError(assistant.ErrSuggestionsUnreadable.Error())
		return nil, err
	}

	c.mu.Lock()
	c.suggestionsPanel.SetLoading(msgSuggesting)
	c.mu.Unlock()

	set, err := c.ai.SuggestImprovements(ctx, resumeJSON, *job)
	if err != nil {
		c.setSuggestionsError(assistant.ErrSuggestionsUnreadable.Error())
		return set, err
	}

	c.mu.Lock()
	c.suggestions = set
	c.suggestionsHTML = rendering.SuggestionsHTML(set)
	c.suggestionsPanel.SetLoaded("")
	c.mu.Unlock()
	return set, nil
}

func (c *Controller) setSuggestionsError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestions = types.SuggestionSet{}
	c.suggestionsHTML = rendering.EscapeHTML(message)
	c.suggestionsPanel.SetError(message)
}

// GenerateCoverLetter drafts a cover letter. It needs a stored résumé and
// all three job fields.
func (c *Controller) GenerateCoverLetter(ctx context.Context) (string, error) {
	v, err, _ := c.flights.Do("cover-letter", func() (any, error) {
		return c.generateCoverLetter(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Controller) generateCoverLetter(ctx context.Context) (string, error) {
	fail := func(message string, err error) (string, error) {
		c.mu.Lock()
		c.coverLetter = ""
		c.coverPanel.SetError(message)
		c.mu.Unlock()
		return "", err
	}

	if _, err := c.requireResume(ctx, msgResumeAndJobFirst); err != nil {
		return fail(err.Error(), err)
	}
	job, err := c.requireJob(ctx, msgResumeAndJobFirst, true)
	if err != nil {
		return fail(err.Error(), err)
	}
	resumeJSON, err := c.repo.ResumeJSON(ctx)
	if err != nil {
		return fail(assistant.ErrCoverLetter.Error(), err)
	}

	c.mu.Lock()
	c.coverPanel.SetLoading(msgGeneratingDraft)
	c.mu.Unlock()

	letter, err := c.ai.GenerateCoverLetter(ctx, *job, resumeJSON)
	if err != nil {
		log.Printf("Cover letter generation failed: %v", err)
		return fail(assistant.CoverLetterErrorMessage(err), err)
	}

	c.mu.Lock()
	c.coverLetter = letter
	c.coverPanel.SetLoaded("")
	c.mu.Unlock()
	return letter, nil
}

// CoverLetter returns the current draft, or "" when there is none.
func (c *Controller) CoverLetter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coverLetter
}

// SaveCoverLetter writes the draft as plain text and returns the path used.
func (c *Controller) SaveCoverLetter(path string) (string, error) {
	draft := c.CoverLetter()
	if draft == "" {
		return "", ErrNothingToSave
	}
	if path == "" {
		path = DefaultCoverLetterFile
	}
	if err := os.WriteFile(path, []byte(draft), 0644); err != nil {
		return "", fmt.Errorf("failed to write cover letter: %w", err)
	}
	return path, nil
}

// ToggleDescription expands or collapses the job description and returns
// whether it is now expanded.
func (c *Controller) ToggleDescription() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expanded = !c.expanded
	return c.expanded
}

func (c *Controller) requireResume(ctx context.Context, message string) (*types.ResumeProfile, error) {
	profile, _, err := c.repo.LoadResume(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotReadyError{Missing: ErrMissingResume, Message: message}
	}
	return profile, err
}

func (c *Controller) requireJob(ctx context.Context, message string, complete bool) (*types.JobPosting, error) {
	job, err := c.repo.LoadJob(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotReadyError{Missing: ErrMissingJob, Message: message}
	}
	if err != nil {
		return nil, err
	}
	if complete && !job.IsComplete() {
		return nil, &NotReadyError{Missing: ErrMissingJob, Message: message}
	}
	return job, nil
}
