package encoder

import (
	"fmt"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// Spreadsheet encodes the record's flat projection as a single-worksheet XLSX
// document. Headers come from the same column contract the delimited encoder
// uses; an empty projection yields a header-only sheet.
func Spreadsheet(record *model.ReportRecord) ([]byte, error) {
	headers, rows := record.FlatTable()

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"0EA5E9"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}

		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	if len(headers) > 0 {
		lastHeaderCell, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return nil, err
		}

		if err := f.SetCellStyle(sheetName, "A1", lastHeaderCell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rIdx, row := range rows {
		for cIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, err
			}

			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	return buf.Bytes(), nil
}
