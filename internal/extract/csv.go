package extract

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// csvMaxLines caps how many non-blank lines of a CSV are kept. Large files
// only contribute their head; that is enough tabular framing for embedding.
const csvMaxLines = 200

// csvHeader prefixes extracted CSV content so the embedding step sees the
// tabular framing even after chunking.
const csvHeader = "CSV Data:"

// extractCSV reads a CSV as UTF-8 with invalid bytes dropped, keeps the first
// csvMaxLines non-blank lines, and prefixes the csvHeader line. A zero-byte or
// whitespace-only file is an ExtractionError; a file whose lines are all blank
// still yields the "CSV Data: Empty file" sentinel rather than an empty string.
func extractCSV(path string) (string, error) {
	content, err := readFile(path)
	if err != nil {
		return "", err
	}
	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Path: path, Err: errors.New("CSV file is empty")}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > csvMaxLines {
		lines = lines[:csvMaxLines]
	}
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return csvHeader + " Empty file", nil
	}
	return csvHeader + "\n" + strings.Join(kept, "\n"), nil
}
