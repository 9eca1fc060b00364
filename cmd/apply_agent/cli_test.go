package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-assistant/internal/config"
	"github.com/jonathan/apply-assistant/internal/ingestion"
	"github.com/jonathan/apply-assistant/internal/llm"
)

const jobPageHTML = `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"JobPosting","title":"Backend Engineer",
 "hiringOrganization":{"@type":"Organization","name":"Acme"},
 "description":"<p>Build Go services on Postgres.</p>"}
</script>
</head><body></body></html>`

const applicationForm = `<html><body><form>
<input id="first_name" name="first_name">
<input id="last_name" name="last_name">
<input id="email" name="email" type="email">
</form></body></html>`

func modelReplies(prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Extract structured information"):
		return `{"name":"Jane Doe","contact":{"email":"jane@example.com","phone":""},"skills":["Go","Postgres"],"experience":[],"education":[]}`, nil
	case strings.Contains(prompt, "calculate an ATS score"):
		return `{"matched_skills":["Go"],"missing_skills":["Kubernetes"],"ATS_score":64}`, nil
	case strings.Contains(prompt, "targeted improvements"):
		return `{"improvements":{"1. Skills to Add/Improve":["- Kubernetes"]}}`, nil
	case strings.Contains(prompt, "cover letter"):
		return "Dear HR,\nJane Doe", nil
	}
	return "", errors.New("unexpected prompt")
}

type cliEnv struct {
	dir    string
	state  string
	client *llm.StubClient
}

// setupCLI isolates configuration and swaps the model and PDF backends for stubs.
func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	for _, key := range []string{
		config.EnvModel, config.EnvModelTier, config.EnvProvider, config.EnvDatabaseURL, config.EnvStatePath,
		config.EnvFirstName, config.EnvLastName, config.EnvEmail, config.EnvPhone, config.EnvLinkedIn,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvAPIKey, "test-key")

	env := &cliEnv{dir: t.TempDir(), client: &llm.StubClient{Respond: modelReplies}}
	env.state = filepath.Join(env.dir, "state.json")

	origClient, origExtractor := newLLMClient, newExtractor
	newLLMClient = func(context.Context, *llm.Config, string) (llm.Client, error) {
		return env.client, nil
	}
	newExtractor = func() ingestion.PageExtractor {
		return &ingestion.StubExtractor{Pages: ingestion.StubPages("Jane Doe", "Go, Postgres")}
	}
	t.Cleanup(func() {
		newLLMClient, newExtractor = origClient, origExtractor
	})
	return env
}

func (e *cliEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the root command with a fresh flag state.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--state", e.state}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestWorkflow(t *testing.T) {
	env := setupCLI(t)
	resume := env.write(t, "jane.pdf", "%PDF-1.4")
	page := env.write(t, "job.html", jobPageHTML)

	out, err := env.run(t, "upload-resume", "--file", resume)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, ingestion.SuccessMessage)

	out, err = env.run(t, "refresh-job", "--html-file", page, "--url", "https://jobs.acme.com/1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Good Match (64%)")

	out, err = env.run(t, "match")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Missing Skills (1)")

	out, err = env.run(t, "optimize")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Kubernetes")

	letterPath := filepath.Join(env.dir, "letter.txt")
	out, err = env.run(t, "cover-letter", "--out", letterPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Dear HR,")
	saved, err := os.ReadFile(letterPath)
	require.NoError(t, err)
	assert.Equal(t, "Dear HR,\nJane Doe", string(saved))

	out, err = env.run(t, "status", "--full")
	require.NoError(t, err, out)
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "jane.pdf")
	assert.Contains(t, out, "JOB MATCH")

	reportPath := filepath.Join(env.dir, "report")
	out, err = env.run(t, "export", "--out", reportPath)
	require.NoError(t, err, out)
	assert.FileExists(t, reportPath+".xlsx")

	form := env.write(t, "form.html", applicationForm)
	out, err = env.run(t, "autofill", "--dry-run", "--html-file", form)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ email")
	assert.Contains(t, out, "✓ firstName")
}

func TestStateSurvivesBetweenCommands(t *testing.T) {
	env := setupCLI(t)
	page := env.write(t, "job.html", jobPageHTML)

	_, err := env.run(t, "refresh-job", "--html-file", page)
	require.NoError(t, err)

	out, err := env.run(t, "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Backend Engineer")
	assert.FileExists(t, env.state)
}

func TestRefreshJob_WithoutResumeShowsGuidance(t *testing.T) {
	env := setupCLI(t)
	page := env.write(t, "job.html", jobPageHTML)

	out, err := env.run(t, "refresh-job", "--html-file", page)

	require.NoError(t, err, out)
	assert.Contains(t, out, "Please upload a resume first to see job match")
	assert.Len(t, env.client.Prompts(), 0)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"refresh without source", []string{"refresh-job"}, "either --url or --html-file must be provided"},
		{"upload without file flag", []string{"upload-resume"}, "required flag(s) \"file\" not set"},
		{"upload missing file", []string{"upload-resume", "--file", "missing.pdf"}, ingestion.ErrFileRead.Error()},
		{"match before upload", []string{"match"}, "Please upload a resume first to see job match results."},
		{"optimize before upload", []string{"optimize"}, "Please upload your resume and refresh job details first."},
		{"cover letter before upload", []string{"cover-letter"}, "Please upload your resume and refresh job details first."},
		{"export before refresh", []string{"export"}, "no job details stored"},
		{"autofill without url", []string{"autofill"}, "--url is required"},
		{"autofill without identity", []string{"autofill", "--url", "https://jobs.acme.com/apply"}, "no identity configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCLI(t)
			_, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestUploadResume_RequiresAPIKey(t *testing.T) {
	env := setupCLI(t)
	t.Setenv(config.EnvAPIKey, "")
	resume := env.write(t, "jane.pdf", "%PDF-1.4")

	_, err := env.run(t, "upload-resume", "--file", resume)

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvAPIKey)
}

func TestUploadResume_RejectsNonPDF(t *testing.T) {
	env := setupCLI(t)
	notes := env.write(t, "notes.txt", "just notes")

	_, err := env.run(t, "upload-resume", "--file", notes)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ingestion.ErrUnsupportedFileType.Error())
	assert.Len(t, env.client.Prompts(), 0)
}

func TestConfigFileIdentity(t *testing.T) {
	env := setupCLI(t)
	cfgPath := env.write(t, "config.json", `{"identity":{"first_name":"Sam","last_name":"Lee","email":"sam@example.com"}}`)
	form := env.write(t, "form.html", applicationForm)

	out, err := env.run(t, "--config", cfgPath, "autofill", "--dry-run", "--html-file", form)

	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ lastName")
}

func TestConfigFileValidation(t *testing.T) {
	env := setupCLI(t)
	cfgPath := env.write(t, "config.json", `{"identity":{"first_name":"Sam","email":"not-an-email"}}`)

	_, err := env.run(t, "--config", cfgPath, "status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "'Identity.Email' failed 'email'")
}

func TestConfigFileModelTier(t *testing.T) {
	env := setupCLI(t)
	cfgPath := env.write(t, "config.json", `{"model_tier":"advanced"}`)
	resume := env.write(t, "jane.pdf", "%PDF-1.4")

	out, err := env.run(t, "--config", cfgPath, "upload-resume", "--file", resume)

	require.NoError(t, err, out)
	assert.Equal(t, []llm.ModelTier{llm.TierAdvanced}, env.client.Tiers())
}

func TestJobSource(t *testing.T) {
	cfg := config.Config{UseBrowser: true, BrowserTimeoutSeconds: 5}

	src, err := jobSource(cfg, "https://jobs.acme.com/1", "", false)
	require.NoError(t, err)
	assert.True(t, src.UseBrowser)
	assert.Equal(t, "https://jobs.acme.com/1", src.URL)
	assert.Equal(t, int64(5), int64(src.BrowserTimeout.Seconds()))

	_, err = jobSource(config.Config{}, "", "", true)
	assert.Error(t, err)
}
