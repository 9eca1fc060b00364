package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SuggestionCategory is one labelled group of suggestions.
type SuggestionCategory struct {
	Name  string
	Items StringList
}

// SuggestionSet maps category labels to suggestions, keeping the order
// in which the categories were produced.
type SuggestionSet []SuggestionCategory

// Get returns the items for a category.
func (s SuggestionSet) Get(name string) (StringList, bool) {
	for _, c := range s {
		if c.Name == name {
			return c.Items, true
		}
	}
	return nil, false
}

// UnmarshalJSON decodes a JSON object while preserving key order.
func (s *SuggestionSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = SuggestionSet{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("suggestions must be a JSON object")
	}

	out := SuggestionSet{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", keyTok)
		}
		var items StringList
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("category %q: %w", key, err)
		}
		out = append(out, SuggestionCategory{Name: key, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalJSON encodes the set as a JSON object in category order.
func (s SuggestionSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		items, err := c.Items.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
