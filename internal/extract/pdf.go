package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates page text in page order, newline separated, and
// trims surrounding whitespace. A page that fails to parse fails the whole
// extraction; partial documents would silently index incomplete content.
func extractPDF(path string) (string, error) {
	content, err := readFile(path)
	if err != nil {
		return "", err
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ExtractionError{Path: path, Err: fmt.Errorf("open PDF: %w", err)}
	}
	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Path: path, Err: fmt.Errorf("PDF page %d: %w", i, err)}
		}
		buf.WriteString(text)
		if i < numPages {
			buf.WriteByte('\n')
		}
	}
	return string(bytes.TrimSpace(buf.Bytes())), nil
}
