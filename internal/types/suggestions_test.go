package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionSet_PreservesOrder(t *testing.T) {
	input := `{"2. Experience": ["Quantify results"], "1. Skills": ["Add Docker", "Add Terraform"], "3. Other": "Tighten formatting"}`

	var set SuggestionSet
	require.NoError(t, json.Unmarshal([]byte(input), &set))

	require.Len(t, set, 3)
	assert.Equal(t, "2. Experience", set[0].Name)
	assert.Equal(t, "1. Skills", set[1].Name)
	assert.Equal(t, StringList{"Add Docker", "Add Terraform"}, set[1].Items)
	assert.Equal(t, StringList{"Tighten formatting"}, set[2].Items)

	items, ok := set.Get("1. Skills")
	assert.True(t, ok)
	assert.Len(t, items, 2)
}

func TestSuggestionSet_RoundTripKeepsOrder(t *testing.T) {
	set := SuggestionSet{
		{Name: "b", Items: StringList{"one"}},
		{Name: "a", Items: nil},
	}
	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t, `{"b":["one"],"a":[]}`, string(data))
}

func TestSuggestionSet_RejectsArray(t *testing.T) {
	var set SuggestionSet
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &set))
}

func TestJobPosting_Formatting(t *testing.T) {
	job := JobPosting{Title: "Engineer", Company: "Acme", Description: "Build APIs"}
	assert.Equal(t, "Title: Engineer\nCompany: Acme\nDescription: Build APIs", job.MatchText())
	assert.Equal(t, "Engineer Build APIs Acme", job.SuggestionText())
	assert.True(t, job.IsComplete())
	assert.False(t, job.IsEmpty())
}
