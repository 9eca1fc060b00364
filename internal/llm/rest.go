package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody caps how much of a failed reply is kept on an APIError.
const maxErrorBody = 4096

// RESTClient calls the generateContent endpoint directly over HTTP.
type RESTClient struct {
	httpClient *http.Client
	config     *Config
	apiKey     string
}

// NewRESTClient builds a REST client. httpClient may be nil.
func NewRESTClient(config *Config, apiKey string, httpClient *http.Client) (*RESTClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config == nil {
		config = DefaultConfig()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RESTClient{httpClient: httpClient, config: config, apiKey: apiKey}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text *string `json:"text,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
}

// endpoint builds {base}/v1beta/models/{model}:generateContent?key={apiKey}.
func (c *RESTClient) endpoint(model string) string {
	base := c.config.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(base, "/"), url.PathEscape(model), url.QueryEscape(c.apiKey))
}

// GenerateContent posts one user turn and returns the first text part of the first candidate.
func (c *RESTClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: &prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := c.config.callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(modelName), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the key
		return "", fmt.Errorf("request to model %s failed: %w", modelName, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &FormatError{Message: "response body is not JSON", Cause: err}
	}

	if len(decoded.Candidates) == 0 {
		return "", &FormatError{Message: "no candidates in response"}
	}
	first := decoded.Candidates[0].Content
	if first == nil || len(first.Parts) == 0 {
		return "", &FormatError{Message: "no content in response"}
	}
	for _, p := range first.Parts {
		if p.Text != nil {
			return *p.Text, nil
		}
	}
	return "", &FormatError{Message: "no text parts in response"}
}

// GetModel returns the model name for a tier
func (c *RESTClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client is shared.
func (c *RESTClient) Close() error {
	return nil
}

func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}
