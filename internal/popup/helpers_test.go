package popup

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/ingestion"
	"github.com/jonathan/apply-assistant/internal/store"
	"github.com/jonathan/apply-assistant/internal/types"
)

const jobPageHTML = `<html><head>
<title>Careers</title>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"JobPosting","title":"Backend Engineer",
 "hiringOrganization":{"@type":"Organization","name":"Acme & Co"},
 "description":"<p>Build Go services on Postgres.</p>"}
</script>
</head><body><h1>Ignored</h1></body></html>`

type fakeLoader struct {
	html  string
	err   error
	calls int
}

func (f *fakeLoader) Load(ctx context.Context, src fetch.Source) (*fetch.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &fetch.Result{URL: src.URL, HTML: f.html, Via: fetch.ViaFile}, nil
}

type fakeAI struct {
	mu sync.Mutex

	profile      *types.ResumeProfile
	structureErr error
	match        *types.MatchResult
	matchErr     error
	suggestions  types.SuggestionSet
	suggestErr   error
	letter       string
	letterErr    error

	matchJobs   []types.JobPosting
	letterCalls int

	// When set, MatchSkills signals entered and waits for release.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeAI) StructureResume(ctx context.Context, text string) (*types.ResumeProfile, error) {
	return f.profile, f.structureErr
}

func (f *fakeAI) MatchSkills(ctx context.Context, job types.JobPosting, resume *types.ResumeProfile) (*types.MatchResult, error) {
	f.mu.Lock()
	f.matchJobs = append(f.matchJobs, job)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	result := *f.match
	return &result, nil
}

func (f *fakeAI) SuggestImprovements(ctx context.Context, resumeJSON string, job types.JobPosting) (types.SuggestionSet, error) {
	if f.suggestions == nil {
		return types.SuggestionSet{}, f.suggestErr
	}
	return f.suggestions, f.suggestErr
}

func (f *fakeAI) GenerateCoverLetter(ctx context.Context, job types.JobPosting, resumeJSON string) (string, error) {
	f.mu.Lock()
	f.letterCalls++
	f.mu.Unlock()
	return f.letter, f.letterErr
}

func (f *fakeAI) matchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matchJobs)
}

func janeDoe() *types.ResumeProfile {
	return &types.ResumeProfile{
		Name:    "Jane Doe",
		Contact: types.Contact{Email: "jane@example.com"},
		Skills:  types.StringList{"Go", "Postgres"},
	}
}

var testJob = types.JobPosting{
	Title:       "Backend Engineer",
	Company:     "Acme",
	Description: "Build Go services.",
}

func newTestController(t *testing.T, ai AI, loader PageLoader) (*Controller, *store.Repository) {
	t.Helper()
	repo := store.NewRepository(store.NewMemoryKV())
	c := New(repo, ai, Options{
		Extractor: &ingestion.StubExtractor{Pages: ingestion.StubPages("Jane Doe", "Go, Postgres")},
		Loader:    loader,
	})
	return c, repo
}

func seed(t *testing.T, repo *store.Repository, profile *types.ResumeProfile, job *types.JobPosting) {
	t.Helper()
	ctx := context.Background()
	if profile != nil {
		require.NoError(t, repo.SaveResume(ctx, profile, "jane.pdf"))
	}
	if job != nil {
		require.NoError(t, repo.SaveJob(ctx, *job))
	}
}

func pdfFile() ingestion.ResumeFile {
	return ingestion.ResumeFile{Name: "jane.pdf", Data: []byte("%PDF-1.4"), DeclaredType: "application/pdf"}
}
