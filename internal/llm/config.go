// Package llm provides model configuration, Gemini clients, and decoding of JSON out of model text.
package llm

import (
	"context"
	"time"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short classification-style prompts
	TierLite ModelTier = "lite"
	// TierStandard is the default tier for assistant tasks
	TierStandard ModelTier = "standard"
	// TierAdvanced selects the larger model
	TierAdvanced ModelTier = "advanced"
)

// Provider selects the transport used to reach the model.
type Provider string

const (
	// ProviderGemini posts directly to the generateContent REST endpoint
	ProviderGemini Provider = "gemini"
	// ProviderGeminiSDK goes through the generative-ai-go SDK
	ProviderGeminiSDK Provider = "gemini-sdk"
)

// DefaultBaseURL is the Gemini generative-language API host.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultRequestTimeout bounds a single model call.
const DefaultRequestTimeout = 30 * time.Second

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	BaseURL  string
	// RequestTimeout of zero disables the per-call deadline.
	RequestTimeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.0-flash-lite",
			TierStandard: "gemini-2.0-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return &next
}

// WithTimeout returns a copy of the config with a different request timeout.
func (c *Config) WithTimeout(d time.Duration) *Config {
	next := *c
	next.RequestTimeout = d
	return &next
}

// callContext applies the configured deadline to one model call.
func (c *Config) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.RequestTimeout)
}
