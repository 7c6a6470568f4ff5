package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	analysisSheet = "Analysis"
	skillsSheet   = "Skills"
)

var analysisHeader = []any{
	"ID", "File", "File Size", "Candidate", "Email", "Contact",
	"Match Score", "Matched Skills", "Missing Skills", "Extracted Skills",
}

// Exporter renders analysis records as an XLSX workbook.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) WriteAnalysisReport(records []domain.AnalysisRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", analysisSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(skillsSheet); err != nil {
		return nil, fmt.Errorf("create skills sheet: %w", err)
	}

	if err := writeRow(f, analysisSheet, 1, analysisHeader); err != nil {
		return nil, err
	}
	if err := writeRow(f, skillsSheet, 1, []any{"File", "Skill", "Status"}); err != nil {
		return nil, err
	}

	skillRow := 2
	for i, rec := range records {
		row := []any{
			rec.ID, rec.FileName, rec.FileSize, rec.CandidateName, rec.Email, rec.Contact,
			rec.MatchScore,
			strings.Join(rec.MatchedSkills, ", "),
			strings.Join(rec.MissingSkills, ", "),
			strings.Join(rec.Skills, ", "),
		}
		if err := writeRow(f, analysisSheet, i+2, row); err != nil {
			return nil, err
		}

		for _, skill := range rec.MatchedSkills {
			if err := writeRow(f, skillsSheet, skillRow, []any{rec.FileName, skill, "matched"}); err != nil {
				return nil, err
			}
			skillRow++
		}
		for _, skill := range rec.MissingSkills {
			if err := writeRow(f, skillsSheet, skillRow, []any{rec.FileName, skill, "missing"}); err != nil {
				return nil, err
			}
			skillRow++
		}
	}

	if err := styleHeader(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(analysisHeader), 1)
	if err := f.SetCellStyle(analysisSheet, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetCellStyle(skillsSheet, "A1", "C1", style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	return nil
}
