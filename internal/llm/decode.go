package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// DecodeTier records which pass recovered the JSON.
type DecodeTier int

const (
	// DecodeStrict means the whole text (minus code fences) was valid JSON.
	DecodeStrict DecodeTier = iota + 1
	// DecodeSubstring means JSON was recovered from the outermost {...} span.
	DecodeSubstring
)

func (t DecodeTier) String() string {
	switch t {
	case DecodeStrict:
		return "strict"
	case DecodeSubstring:
		return "substring"
	default:
		return "none"
	}
}

// Greedy: first '{' through last '}'.
var objectSpan = regexp.MustCompile(`(?s)\{.*\}`)

// Decoded is the tagged result of DecodeJSON.
type Decoded struct {
	Tier DecodeTier
	JSON json.RawMessage
}

// DecodeJSON recovers a JSON value from model text. It tries the text as-is
// first and then the widest brace-delimited span; a *ParseError carrying the
// raw text is returned when both fail.
func DecodeJSON(text string) (*Decoded, error) {
	cleaned := CleanJSONBlock(text)
	if cleaned != "" && json.Valid([]byte(cleaned)) {
		return &Decoded{Tier: DecodeStrict, JSON: json.RawMessage(cleaned)}, nil
	}

	span := objectSpan.FindString(text)
	if span != "" && json.Valid([]byte(span)) {
		return &Decoded{Tier: DecodeSubstring, JSON: json.RawMessage(span)}, nil
	}

	return nil, &ParseError{Message: "no JSON object found in response", Text: text}
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
