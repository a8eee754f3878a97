package extract

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractSpreadsheet flattens spreadsheet content to text, sheet by sheet.
// Each row becomes one line with cells joined by " | ".
func extractSpreadsheet(filename, ext string, data []byte) (string, error) {
	if ext == "csv" {
		return flattenCSV(data)
	}
	return flattenWorkbook(data)
}

func flattenWorkbook(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", err
		}
		sb.WriteString("Sheet: " + sheet + "\n")
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " | "))
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String()), nil
}

func flattenCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are fine for flattening

	records, err := reader.ReadAll()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, row := range records {
		line := strings.TrimSpace(strings.Join(row, " | "))
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String()), nil
}
