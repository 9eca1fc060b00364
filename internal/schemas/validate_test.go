package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MatchResult(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		valid bool
	}{
		{"all keys", `{"matched_skills":["Go"],"missing_skills":[],"ATS_score":85}`, true},
		{"loose types are accepted", `{"matched_skills":"Go","missing_skills":null,"ATS_score":"85%"}`, true},
		{"missing score", `{"matched_skills":["Go"],"missing_skills":[]}`, false},
		{"not an object", `["Go"]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(MatchResult, tt.json)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidate_MissingScoreReportsRoot(t *testing.T) {
	err := Validate(MatchResult, `{"matched_skills":[],"missing_skills":[]}`)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"(root)"}, validationErr.Fields())
	assert.Contains(t, validationErr.Error(), "ATS_score")
	assert.Contains(t, validationErr.Error(), "match_result")
}

func TestValidate_Suggestions(t *testing.T) {
	assert.NoError(t, Validate(Suggestions, `{"improvements":{"Skills":["Add Go"]}}`))
	assert.Error(t, Validate(Suggestions, `{"improvements":["Add Go"]}`))
	assert.Error(t, Validate(Suggestions, `{}`))
}

func TestValidate_StateEnvelope(t *testing.T) {
	assert.NoError(t, Validate(StateEnvelope, `{"schema_version":1,"data":{"name":"Jane"}}`))
	assert.NoError(t, Validate(StateEnvelope, `{"schema_version":2,"data":null}`))
	assert.Error(t, Validate(StateEnvelope, `{"name":"Jane"}`))
	assert.Error(t, Validate(StateEnvelope, `{"schema_version":"1","data":{}}`))
}

func TestValidate_ResumeProfile(t *testing.T) {
	assert.NoError(t, Validate(ResumeProfile, `{"name":"Jane","contact":{"email":"j@x.io"}}`))
	assert.Error(t, Validate(ResumeProfile, `"Jane Doe"`))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", `{}`)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"]}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"x"}`))

	err := ValidateJSONString(schema, `{}`)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}
