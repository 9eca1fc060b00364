package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-assistant/internal/types"
)

func TestRepository_ResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRepository(kv)

	profile := &types.ResumeProfile{
		Name:    "Jane Doe",
		Contact: types.Contact{Email: "jane@x.com", Phone: "555-0100"},
		Skills:  types.StringList{"Python", "SQL"},
		Experience: []types.WorkExperience{
			{Title: "Engineer", Company: "Acme", Duration: "2020-2024"},
		},
	}
	require.NoError(t, repo.SaveResume(ctx, profile, "jane.pdf"))

	raw, _, _ := kv.Get(ctx, KeyResumeData)
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.JSONEq(t, "1", string(env["schema_version"]))

	loaded, name, err := repo.LoadResume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jane.pdf", name)
	assert.Equal(t, profile, loaded)

	resumeJSON, err := repo.ResumeJSON(ctx)
	require.NoError(t, err)
	assert.Contains(t, resumeJSON, `"name":"Jane Doe"`)
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryKV())

	_, _, err := repo.LoadResume(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.LoadJob(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.LoadMatch(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.ResumeJSON(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_JobIsThreeKeys(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRepository(kv)

	job := types.JobPosting{Title: "SRE", Company: "Globex", Description: "Keep &amp; things up"}
	require.NoError(t, repo.SaveJob(ctx, job))

	for key, want := range map[string]string{
		KeyJobTitle:       "SRE",
		KeyJobCompany:     "Globex",
		KeyJobDescription: "Keep &amp; things up",
	} {
		value, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, value)
	}

	loaded, err := repo.LoadJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, job, *loaded)
}

func TestRepository_PartialJob(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyJobTitle, "Only title"))

	job, err := NewRepository(kv).LoadJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Only title", job.Title)
	assert.False(t, job.IsComplete())
}

func TestRepository_MatchRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryKV())

	result := &types.MatchResult{
		MatchedSkills: types.StringList{"Go"},
		MissingSkills: types.StringList{"Kubernetes"},
		ATSScore:      72,
	}
	require.NoError(t, repo.SaveMatch(ctx, result))

	loaded, err := repo.LoadMatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, result, loaded)
}

func TestRepository_LegacyResumeIsMigrated(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	legacy := `{
		"name": "Jane Doe",
		"contactInfo": {"email": "jane@x.com", "phone": 5550100},
		"skills": "Python",
		"workExperience": [{"title": "Engineer", "company": "Acme", "date": "2021"}],
		"education": [{"degree": "BSc", "institution": "State U", "date": 2019}]
	}`
	require.NoError(t, kv.Set(ctx, KeyResumeData, legacy))
	require.NoError(t, kv.Set(ctx, KeyResumeName, "old.pdf"))

	profile, name, err := NewRepository(kv).LoadResume(ctx)
	require.NoError(t, err)

	assert.Equal(t, "old.pdf", name)
	assert.Equal(t, "jane@x.com", profile.Contact.Email)
	assert.Equal(t, types.FlexString("5550100"), profile.Contact.Phone)
	assert.Equal(t, types.StringList{"Python"}, profile.Skills)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, types.FlexString("2021"), profile.Experience[0].Duration)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, types.FlexString("2019"), profile.Education[0].Year)
}

func TestRepository_LegacyMatchIsRead(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyLastMatch, `{"matched_skills":["Go"],"missing_skills":[],"ATS_score":"140"}`))

	result, err := NewRepository(kv).LoadMatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.Score(100), result.ATSScore)
}

func TestRepository_FutureVersionRejected(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyLastMatch, `{"schema_version":7,"data":{}}`))

	_, err := NewRepository(kv).LoadMatch(ctx)
	assert.True(t, errors.Is(err, ErrUnsupportedSchemaVersion))
}

func TestRepository_CorruptValues(t *testing.T) {
	ctx := context.Background()

	for name, raw := range map[string]string{
		"not json":           `{oops`,
		"envelope sans data": `{"schema_version":1}`,
		"string version":     `{"schema_version":"1","data":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(ctx, KeyLastMatch, raw))

			_, err := NewRepository(kv).LoadMatch(ctx)
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrNotFound))
		})
	}
}
