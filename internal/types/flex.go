package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// StringList is a list of strings that tolerates loosely shaped model output.
// A JSON array keeps its elements (non-string elements are stringified),
// a truthy scalar becomes a one-element list and anything falsy becomes empty.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case []any:
		out := make(StringList, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, scalarString(item))
		}
		*l = out
	default:
		if truthy(v) {
			*l = StringList{scalarString(v)}
		} else {
			*l = StringList{}
		}
	}
	return nil
}

// MarshalJSON always emits an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// FlexString accepts a JSON string, number or boolean and keeps its text form.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = FlexString(scalarString(raw))
	return nil
}

// Score is an integer percentage decoded leniently: numbers are truncated and
// bounded to [0,100], strings are read up to their first non-digit ("85%" is
// 85) and anything else decodes to 0.
type Score int

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		switch {
		case math.IsNaN(v):
			*s = 0
		case v > 100:
			*s = 100
		case v < 0:
			*s = 0
		default:
			*s = Score(int(v))
		}
	case string:
		*s = Score(ParseLeadingInt(v))
	default:
		*s = 0
	}
	return nil
}

// Clamp bounds the score to [0,100].
func (s Score) Clamp() Score {
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	default:
		return s
	}
}

// ParseLeadingInt parses an optional sign and the leading decimal digits of s,
// ignoring leading whitespace. It returns 0 when no digits are found and
// saturates at the int range when the digits overflow.
func ParseLeadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case bool:
		return t
	default:
		return true
	}
}
