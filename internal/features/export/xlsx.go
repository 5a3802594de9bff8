package export

import (
	"fmt"
	"time"

	"agency-forms/internal/features/form"
	"agency-forms/internal/features/submission"
	"agency-forms/pkg/condition"

	"github.com/xuri/excelize/v2"
)

const submissionsSheet = "Submissions"

// SubmissionsWorkbook lays out one row per submission and one column per template field.
func SubmissionsWorkbook(template *form.FormTemplate, submissions []submission.FormSubmission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(submissionsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	fields := template.Fields()
	headers := []string{"Submission ID", "Status", "Lines of Business", "Submitted At"}
	for _, field := range fields {
		headers = append(headers, field.Label)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(submissionsSheet, cell, header)
		f.SetCellStyle(submissionsSheet, cell, cell, headerStyle)
	}

	for rowIdx, sub := range submissions {
		row := []interface{}{sub.ID.Hex(), string(sub.Status), joinNonEmpty(", ", sub.LineOfBusiness.Strings()...), ""}
		if sub.SubmittedAt != nil {
			row[3] = sub.SubmittedAt.UTC().Format(time.DateTime)
		}
		for _, field := range fields {
			row = append(row, condition.Stringify(sub.SubmissionData[field.Name]))
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetSheetRow(submissionsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", rowIdx+2, err)
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(submissionsSheet, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
