package llm

import (
	"context"
	"sync"
)

// StubClient is a Client that answers from a function instead of the network.
// It records every prompt it receives and the tier it was sent to.
type StubClient struct {
	Respond func(prompt string) (string, error)
	Model   string

	mu      sync.Mutex
	prompts []string
	tiers   []ModelTier
}

// StaticReply returns a StubClient that always answers text.
func StaticReply(text string) *StubClient {
	return &StubClient{Respond: func(string) (string, error) { return text, nil }}
}

// StaticError returns a StubClient that always fails with err.
func StaticError(err error) *StubClient {
	return &StubClient{Respond: func(string) (string, error) { return "", err }}
}

func (s *StubClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Respond == nil {
		return "", &FormatError{Message: "stub has no reply"}
	}
	return s.Respond(prompt)
}

func (s *StubClient) GetModel(tier ModelTier) string {
	if s.Model != "" {
		return s.Model
	}
	return "stub"
}

func (s *StubClient) Close() error {
	return nil
}

// Prompts returns the prompts received so far.
func (s *StubClient) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Tiers returns the tier of each call so far.
func (s *StubClient) Tiers() []ModelTier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ModelTier(nil), s.tiers...)
}
