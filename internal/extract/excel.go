package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractExcel extracts text from a .xlsx file: every sheet in order, rows
// joined with tabs so tabular structure survives into the chunk text.
func extractExcel(path string) (string, error) {
	content, err := readFile(path)
	if err != nil {
		return "", err
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", &ExtractionError{Path: path, Err: fmt.Errorf("open XLSX: %w", err)}
	}
	defer f.Close()

	var buf strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", &ExtractionError{Path: path, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
		}
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteByte('\n')
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
