package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/apply-assistant/internal/types"
)

func testReport() Report {
	return Report{
		Job: types.JobPosting{
			Title:       "Backend Engineer",
			Company:     "Acme &amp; Co",
			Description: "Build Go services.",
		},
		ResumeName: "jane.pdf",
		Match: &types.MatchResult{
			MatchedSkills: types.StringList{"Go", "Postgres"},
			MissingSkills: types.StringList{},
			ATSScore:      82,
		},
		Suggestions: types.SuggestionSet{
			{Name: "1. Skills to Add/Improve", Items: types.StringList{"- Kubernetes", "- gRPC"}},
			{Name: "4. Other Improvements", Items: types.StringList{"- Trim hobbies"}},
		},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestWriteExcel(t *testing.T) {
	path, err := WriteExcel(testReport(), filepath.Join(t.TempDir(), "report"))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, SkillsSheet, SuggestionsSheet}, f.GetSheetList())

	cell := func(sheet, axis string) string {
		value, err := f.GetCellValue(sheet, axis)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "Backend Engineer", cell(SummarySheet, "B3"))
	assert.Equal(t, "Acme & Co", cell(SummarySheet, "B4"))
	assert.Equal(t, "jane.pdf", cell(SummarySheet, "B5"))
	assert.Equal(t, "2026-01-02 03:04:05", cell(SummarySheet, "B6"))
	assert.Equal(t, "Strong Match (82%)", cell(SummarySheet, "B8"))
	assert.Equal(t, "82", cell(SummarySheet, "B9"))

	assert.Equal(t, "Postgres", cell(SkillsSheet, "A3"))
	assert.Equal(t, "No missing skills identified", cell(SkillsSheet, "B2"))

	assert.Equal(t, "1. Skills to Add/Improve", cell(SuggestionsSheet, "A3"))
	assert.Equal(t, "- gRPC", cell(SuggestionsSheet, "B3"))
	assert.Equal(t, "- Trim hobbies", cell(SuggestionsSheet, "B4"))
}

func TestWriteExcel_WithoutMatch(t *testing.T) {
	report := testReport()
	report.Match = nil
	report.Suggestions = nil

	path, err := WriteExcel(report, filepath.Join(t.TempDir(), "report.xlsx"))
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(SummarySheet, "B8")
	require.NoError(t, err)
	assert.Equal(t, "No match computed", value)

	rows, err := f.GetRows(SuggestionsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, "C6EFCE", scoreColor(80))
	assert.Equal(t, "FFEB9C", scoreColor(79))
	assert.Equal(t, "FFC7CE", scoreColor(10))
}
