package tabular

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"askcaira/backend/models"
)

// parseExcel reads the first sheet only. Row 0 after dropping fully empty
// rows is the header row.
func parseExcel(content []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, parseErrorf(FormatExcel, err, "Excel file parsing failed: %v. Please ensure the file is a valid Excel file (.xlsx or .xls)", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, parseErrorf(FormatExcel, nil, "No sheets found in Excel file")
	}
	sheet := sheets[0]
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, parseErrorf(FormatExcel, err, "Excel file parsing failed: %v. Please ensure the file is a valid Excel file (.xlsx or .xls)", err)
	}
	if len(raw) == 0 {
		return nil, parseErrorf(FormatExcel, nil, "Excel sheet %q appears to be empty", sheet)
	}
	if err := markBoolCells(f, sheet, raw); err != nil {
		return nil, parseErrorf(FormatExcel, err, "Excel file parsing failed: %v. Please ensure the file is a valid Excel file (.xlsx or .xls)", err)
	}

	kept := make([][]string, 0, len(raw))
	for _, r := range raw {
		if !isEmptyRow(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil, parseErrorf(FormatExcel, nil, "No data found in Excel sheet after filtering empty rows")
	}
	if len(kept[0]) == 0 {
		return nil, parseErrorf(FormatExcel, nil, "No column headers found in Excel file")
	}
	headers := normalizeHeaders(kept[0])

	rows := make([]models.Row, 0, len(kept)-1)
	for _, r := range kept[1:] {
		rows = append(rows, buildRow(headers, r))
	}
	if len(rows) == 0 {
		return nil, parseErrorf(FormatExcel, nil, "No data rows found in Excel sheet %q", sheet)
	}
	return &Table{Headers: headers, Rows: rows}, nil
}

// markBoolCells rewrites boolean cells, which raw reads report as 1 or 0,
// to TRUE and FALSE so they are typed like CSV booleans.
func markBoolCells(f *excelize.File, sheet string, raw [][]string) error {
	for i, r := range raw {
		for j, v := range r {
			if v != "0" && v != "1" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			ct, err := f.GetCellType(sheet, cell)
			if err != nil {
				return err
			}
			if ct != excelize.CellTypeBool {
				continue
			}
			if v == "1" {
				r[j] = "TRUE"
			} else {
				r[j] = "FALSE"
			}
		}
	}
	return nil
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
