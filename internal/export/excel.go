// Package export writes the current match and suggestions to a spreadsheet.
package export

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/apply-assistant/internal/rendering"
	"github.com/jonathan/apply-assistant/internal/types"
)

// Sheet names.
const (
	SummarySheet     = "Summary"
	SkillsSheet      = "Skills"
	SuggestionsSheet = "Suggestions"
)

// Report is everything written to the workbook. Job fields are the stored,
// sanitized values and are unescaped on the way out.
type Report struct {
	Job         types.JobPosting
	ResumeName  string
	Match       *types.MatchResult
	Suggestions types.SuggestionSet
	GeneratedAt time.Time
}

// WriteExcel saves report as an .xlsx file and returns the path written.
func WriteExcel(report Report, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", err
	}
	for _, name := range []string{SkillsSheet, SuggestionsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return "", err
		}
	}

	if err := writeSummary(f, report); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSkills(f, report.Match); err != nil {
		return "", fmt.Errorf("failed to create skills sheet: %w", err)
	}
	if err := writeSuggestions(f, report.Suggestions); err != nil {
		return "", fmt.Errorf("failed to create suggestions sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return outputPath, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
}

// scoreColor follows the match levels: green, amber, red.
func scoreColor(score int) string {
	switch types.MatchLabel(score) {
	case types.LabelStrong:
		return "C6EFCE"
	case types.LabelGood:
		return "FFEB9C"
	default:
		return "FFC7CE"
	}
}

func writeSummary(f *excelize.File, report Report) error {
	sheet := SummarySheet
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 70); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	wrapped, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}

	generated := report.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	f.SetCellValue(sheet, "A1", "Job Application Report")
	f.SetCellStyle(sheet, "A1", "B1", header)
	f.MergeCell(sheet, "A1", "B1")

	rows := [][2]string{
		{"Job Title:", html.UnescapeString(report.Job.Title)},
		{"Company:", html.UnescapeString(report.Job.Company)},
		{"Resume:", report.ResumeName},
		{"Generated:", generated.Format("2006-01-02 15:04:05")},
	}
	row := 3
	for _, r := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r[1])
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Match:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), label)
	if report.Match != nil {
		score := int(report.Match.ATSScore)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rendering.MatchBadge(report.Match).Text)
		badge, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{scoreColor(score)}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), badge)
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "ATS Score:")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), score)
	} else {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "No match computed")
	}
	row += 2

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Description:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), label)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), html.UnescapeString(report.Job.Description))
	f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), wrapped)

	return nil
}

func writeSkills(f *excelize.File, match *types.MatchResult) error {
	sheet := SkillsSheet
	if err := f.SetColWidth(sheet, "A", "B", 35); err != nil {
		return err
	}
	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Matched Skills")
	f.SetCellValue(sheet, "B1", "Missing Skills")
	f.SetCellStyle(sheet, "A1", "B1", header)

	if match == nil {
		return nil
	}

	matched, missing := match.MatchedSkills, match.MissingSkills
	if len(matched) == 0 {
		matched = types.StringList{"No matching skills found"}
	}
	if len(missing) == 0 {
		missing = types.StringList{"No missing skills identified"}
	}
	for i, skill := range matched {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), skill)
	}
	for i, skill := range missing {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), skill)
	}
	return nil
}

func writeSuggestions(f *excelize.File, set types.SuggestionSet) error {
	sheet := SuggestionsSheet
	if err := f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 80); err != nil {
		return err
	}
	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Category")
	f.SetCellValue(sheet, "B1", "Suggestion")
	f.SetCellStyle(sheet, "A1", "B1", header)

	row := 2
	for _, category := range set {
		for _, item := range category.Items {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), category.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item)
			row++
		}
	}
	return nil
}
