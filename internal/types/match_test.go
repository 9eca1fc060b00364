package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLabel_Boundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, LabelStrong},
		{80, LabelStrong},
		{79, LabelGood},
		{60, LabelGood},
		{59, LabelWeak},
		{0, LabelWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MatchLabel(tt.score), "score %d", tt.score)
	}
}

func TestMatchResult_UnmarshalCoercion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		matched []string
		missing []string
		score   int
	}{
		{
			name:    "well formed",
			input:   `{"matched_skills":["Go","SQL"],"missing_skills":["Kubernetes"],"ATS_score":72}`,
			matched: []string{"Go", "SQL"},
			missing: []string{"Kubernetes"},
			score:   72,
		},
		{
			name:    "scalar skills wrapped",
			input:   `{"matched_skills":"Go","missing_skills":"","ATS_score":"85%"}`,
			matched: []string{"Go"},
			missing: []string{},
			score:   85,
		},
		{
			name:    "null fields",
			input:   `{"matched_skills":null,"missing_skills":null,"ATS_score":null}`,
			matched: []string{},
			missing: []string{},
			score:   0,
		},
		{
			name:    "non numeric score",
			input:   `{"matched_skills":[],"missing_skills":[],"ATS_score":"high"}`,
			matched: []string{},
			missing: []string{},
			score:   0,
		},
		{
			name:    "float score truncated",
			input:   `{"matched_skills":[],"missing_skills":[],"ATS_score":66.9}`,
			matched: []string{},
			missing: []string{},
			score:   66,
		},
		{
			name:    "huge float score",
			input:   `{"matched_skills":[],"missing_skills":[],"ATS_score":1e20}`,
			matched: []string{},
			missing: []string{},
			score:   100,
		},
		{
			name:    "huge negative float score",
			input:   `{"matched_skills":[],"missing_skills":[],"ATS_score":-1e20}`,
			matched: []string{},
			missing: []string{},
			score:   0,
		},
		{
			name:    "overflowing string score",
			input:   `{"matched_skills":[],"missing_skills":[],"ATS_score":"99999999999999999999"}`,
			matched: []string{},
			missing: []string{},
			score:   100,
		},
		{
			name:    "overflowing negative string score",
			input:   `{"matched_skills":[],"missing_skills":[],"ATS_score":"-99999999999999999999%"}`,
			matched: []string{},
			missing: []string{},
			score:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result MatchResult
			require.NoError(t, json.Unmarshal([]byte(tt.input), &result))
			result.Normalize()

			assert.Equal(t, tt.matched, []string(result.MatchedSkills))
			assert.Equal(t, tt.missing, []string(result.MissingSkills))
			assert.Equal(t, tt.score, int(result.ATSScore))
		})
	}
}

func TestMatchResult_NormalizeClampsScore(t *testing.T) {
	result := MatchResult{ATSScore: 140}
	result.Normalize()
	assert.Equal(t, Score(100), result.ATSScore)

	result = MatchResult{ATSScore: -5}
	result.Normalize()
	assert.Equal(t, Score(0), result.ATSScore)
}

func TestMatchResult_MarshalEmitsArrays(t *testing.T) {
	data, err := json.Marshal(MatchResult{ATSScore: 50})
	require.NoError(t, err)
	assert.JSONEq(t, `{"matched_skills":[],"missing_skills":[],"ATS_score":50}`, string(data))
}

func TestParseLeadingInt(t *testing.T) {
	assert.Equal(t, 42, ParseLeadingInt("42"))
	assert.Equal(t, 42, ParseLeadingInt("  42 percent"))
	assert.Equal(t, -3, ParseLeadingInt("-3"))
	assert.Equal(t, 0, ParseLeadingInt("abc"))
	assert.Equal(t, 0, ParseLeadingInt(""))
	assert.Equal(t, 0, ParseLeadingInt("-"))
	assert.Equal(t, math.MaxInt, ParseLeadingInt("99999999999999999999"))
	assert.Equal(t, math.MinInt, ParseLeadingInt("-99999999999999999999"))
}
