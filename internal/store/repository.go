package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/apply-assistant/internal/schemas"
	"github.com/jonathan/apply-assistant/internal/types"
)

// SchemaVersion is written into every stored JSON value.
const SchemaVersion = 1

var (
	// ErrNotFound means nothing is stored under the requested key(s).
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedSchemaVersion means the value was written by a newer release.
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
)

// envelope wraps JSON values with the version that wrote them.
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// migration upgrades a decoded value by one version.
type migration func(map[string]any) map[string]any

// migrations[key][v] upgrades a value of key from version v to v+1.
// Version 0 is the unversioned format of earlier releases.
var migrations = map[string]map[int]migration{
	KeyResumeData: {0: migrateResumeV0},
}

// Repository is the typed view over a KV.
type Repository struct {
	kv KV
}

// NewRepository wraps kv.
func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// SaveResume stores the profile and then its file name.
func (r *Repository) SaveResume(ctx context.Context, profile *types.ResumeProfile, fileName string) error {
	if err := r.putJSON(ctx, KeyResumeData, profile); err != nil {
		return err
	}
	if err := r.kv.Set(ctx, KeyResumeName, fileName); err != nil {
		return fmt.Errorf("failed to store %s: %w", KeyResumeName, err)
	}
	return nil
}

// LoadResume returns the stored profile and file name, or ErrNotFound.
func (r *Repository) LoadResume(ctx context.Context) (*types.ResumeProfile, string, error) {
	var profile types.ResumeProfile
	if err := r.getJSON(ctx, KeyResumeData, &profile); err != nil {
		return nil, "", err
	}
	name, _, err := r.kv.Get(ctx, KeyResumeName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", KeyResumeName, err)
	}
	return &profile, name, nil
}

// ResumeJSON returns the stored profile re-encoded at the current version.
func (r *Repository) ResumeJSON(ctx context.Context) (string, error) {
	profile, _, err := r.LoadResume(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}
	return string(data), nil
}

// SaveJob stores the three job fields as separate writes. A failure part way
// through can leave fields from different pages.
func (r *Repository) SaveJob(ctx context.Context, job types.JobPosting) error {
	for _, kv := range []struct{ key, value string }{
		{KeyJobTitle, job.Title},
		{KeyJobCompany, job.Company},
		{KeyJobDescription, job.Description},
	} {
		if err := r.kv.Set(ctx, kv.key, kv.value); err != nil {
			return fmt.Errorf("failed to store %s: %w", kv.key, err)
		}
	}
	return nil
}

// LoadJob returns the stored job, or ErrNotFound when no field is stored.
func (r *Repository) LoadJob(ctx context.Context) (*types.JobPosting, error) {
	var job types.JobPosting
	found := false
	for _, field := range []struct {
		key string
		dst *string
	}{
		{KeyJobTitle, &job.Title},
		{KeyJobCompany, &job.Company},
		{KeyJobDescription, &job.Description},
	} {
		value, ok, err := r.kv.Get(ctx, field.key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", field.key, err)
		}
		if ok {
			*field.dst = value
			found = found || value != ""
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	return &job, nil
}

// SaveMatch stores the latest match result.
func (r *Repository) SaveMatch(ctx context.Context, result *types.MatchResult) error {
	return r.putJSON(ctx, KeyLastMatch, result)
}

// LoadMatch returns the latest match result, or ErrNotFound.
func (r *Repository) LoadMatch(ctx context.Context) (*types.MatchResult, error) {
	var result types.MatchResult
	if err := r.getJSON(ctx, KeyLastMatch, &result); err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

func (r *Repository) putJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	wrapped, err := json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, string(wrapped)); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (r *Repository) getJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return ErrNotFound
	}

	data, err := unwrap(key, raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("stored %s is unreadable: %w", key, err)
	}
	return nil
}

// unwrap returns the value's data upgraded to SchemaVersion.
func unwrap(key, raw string) (json.RawMessage, error) {
	version, data, err := splitEnvelope(raw)
	if err != nil {
		return nil, fmt.Errorf("stored %s is unreadable: %w", key, err)
	}
	if version > SchemaVersion {
		return nil, fmt.Errorf("%s: %w %d", key, ErrUnsupportedSchemaVersion, version)
	}
	if version == SchemaVersion {
		return data, nil
	}

	var value map[string]any
	if err := json.Unmarshal(data, &value); err != nil {
		// Non-object legacy values have nothing to migrate.
		return data, nil
	}
	for v := version; v < SchemaVersion; v++ {
		if migrate, ok := migrations[key][v]; ok {
			value = migrate(value)
		}
	}
	upgraded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", key, err)
	}
	return upgraded, nil
}

// splitEnvelope reports version 0 for values written before envelopes existed.
func splitEnvelope(raw string) (int, json.RawMessage, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		if !json.Valid([]byte(raw)) {
			return 0, nil, err
		}
		return 0, json.RawMessage(raw), nil
	}
	if _, versioned := probe["schema_version"]; !versioned {
		return 0, json.RawMessage(raw), nil
	}

	if err := schemas.Validate(schemas.StateEnvelope, raw); err != nil {
		return 0, nil, err
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return 0, nil, err
	}
	return env.SchemaVersion, env.Data, nil
}

// migrateResumeV0 renames the field names earlier releases read back.
func migrateResumeV0(value map[string]any) map[string]any {
	rename(value, "contactInfo", "contact")
	rename(value, "workExperience", "experience")
	if jobs, ok := value["experience"].([]any); ok {
		for _, job := range jobs {
			if m, ok := job.(map[string]any); ok {
				rename(m, "date", "duration")
			}
		}
	}
	if degrees, ok := value["education"].([]any); ok {
		for _, degree := range degrees {
			if m, ok := degree.(map[string]any); ok {
				rename(m, "date", "year")
			}
		}
	}
	return value
}

// rename moves from to to unless to is already set.
func rename(m map[string]any, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	if _, exists := m[to]; !exists {
		m[to] = v
	}
	delete(m, from)
}
