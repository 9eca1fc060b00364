// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/apply-assistant/internal/autofill"
	"github.com/jonathan/apply-assistant/internal/llm"
	"github.com/jonathan/apply-assistant/internal/store"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvModel       = "GEMINI_MODEL"
	EnvModelTier   = "GEMINI_MODEL_TIER"
	EnvProvider    = "GEMINI_PROVIDER"
	EnvDatabaseURL = "DATABASE_URL"
	EnvStatePath   = "APPLY_STATE_PATH"
	EnvFirstName   = "APPLY_FIRST_NAME"
	EnvLastName    = "APPLY_LAST_NAME"
	EnvEmail       = "APPLY_EMAIL"
	EnvPhone       = "APPLY_PHONE"
	EnvLinkedIn    = "APPLY_LINKEDIN"
)

// DefaultPort is the port used by serve.
const DefaultPort = 8787

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, the environment or CLI flags.
type Config struct {
	// Storage
	StatePath   string `json:"state_path,omitempty"`   // Path to the state file
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; replaces the state file

	// Model
	APIKey   string `json:"api_key,omitempty"`                                               // Gemini API key
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=gemini gemini-sdk"` // Transport
	Model    string `json:"model,omitempty"`                                                 // Model name for every task
	BaseURL  string `json:"base_url,omitempty" validate:"omitempty,url"`                     // Endpoint override

	// Model tier used by every task: lite, standard (default) or advanced.
	ModelTier string `json:"model_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`

	// Per-call timeout in seconds. Unset means the default; 0 disables it.
	RequestTimeoutSeconds *int `json:"request_timeout_seconds,omitempty" validate:"omitempty,gte=0"`

	// Behavior
	UseBrowser            bool `json:"use_browser,omitempty"`                               // Render job pages in headless Chrome
	BrowserTimeoutSeconds int  `json:"browser_timeout_seconds,omitempty" validate:"gte=0"`  // Headless render timeout
	Verbose               bool `json:"verbose,omitempty"`                                   // Print detailed debug information
	Port                  int  `json:"port,omitempty" validate:"omitempty,min=1,max=65535"` // serve port

	// Auto-fill
	Identity *autofill.Identity `json:"identity,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration held in environment variables.
func FromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv(EnvAPIKey),
		Model:       os.Getenv(EnvModel),
		ModelTier:   os.Getenv(EnvModelTier),
		Provider:    os.Getenv(EnvProvider),
		DatabaseURL: os.Getenv(EnvDatabaseURL),
		StatePath:   os.Getenv(EnvStatePath),
	}

	id := autofill.Identity{
		FirstName: os.Getenv(EnvFirstName),
		LastName:  os.Getenv(EnvLastName),
		Email:     os.Getenv(EnvEmail),
		Phone:     os.Getenv(EnvPhone),
		LinkedIn:  os.Getenv(EnvLinkedIn),
	}
	if !id.IsEmpty() {
		cfg.Identity = &id
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// It does not require the API key; commands that call the model check that.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %s", describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		parts = append(parts, fmt.Sprintf("'%s' failed '%s'", field, fe.Tag()))
	}
	return strings.Join(parts, ", ")
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer the environment over the config file.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.StatePath == "" {
		result.StatePath = defaults.StatePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.ModelTier == "" {
		result.ModelTier = defaults.ModelTier
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}

	// Numeric fields
	if result.RequestTimeoutSeconds == nil {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if result.BrowserTimeoutSeconds == 0 {
		result.BrowserTimeoutSeconds = defaults.BrowserTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.Identity == nil {
		result.Identity = defaults.Identity
	}

	// Bool fields: cannot distinguish unset from false, so either side enables them
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Resolve layers the environment over an optional config file.
func Resolve(path string) (Config, error) {
	env := FromEnv()
	if path == "" {
		return env, env.Validate()
	}
	file, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	merged := env.MergeWithDefaults(*file)
	return merged, merged.Validate()
}

// RequestTimeout returns the per-call model timeout.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds == nil {
		return llm.DefaultRequestTimeout
	}
	return time.Duration(*c.RequestTimeoutSeconds) * time.Second
}

// BrowserTimeout returns the headless render timeout; zero selects the fetch default.
func (c *Config) BrowserTimeout() time.Duration {
	return time.Duration(c.BrowserTimeoutSeconds) * time.Second
}

// ResolvedStatePath returns the state file path, defaulting under the home directory.
func (c *Config) ResolvedStatePath() (string, error) {
	if c.StatePath != "" {
		return c.StatePath, nil
	}
	return store.DefaultStatePath()
}

// ResolvedPort returns the serve port.
func (c *Config) ResolvedPort() int {
	if c.Port == 0 {
		return DefaultPort
	}
	return c.Port
}

// Tier returns the model tier the assistant calls.
func (c *Config) Tier() llm.ModelTier {
	if c.ModelTier == "" {
		return llm.TierStandard
	}
	return llm.ModelTier(c.ModelTier)
}

// LLMConfig builds the model client configuration. Model overrides the model
// of the selected tier.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Provider != "" {
		cfg.Provider = llm.Provider(c.Provider)
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.Model != "" {
		cfg = cfg.WithModel(c.Tier(), c.Model)
	}
	return cfg.WithTimeout(c.RequestTimeout())
}
