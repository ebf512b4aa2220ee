package extract

import (
	"strings"
	"unicode/utf8"
)

// extractPlain returns the file content as a string, validating it is valid
// UTF-8. Invalid sequences are replaced with the replacement character.
func extractPlain(path string) (string, error) {
	content, err := readFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "�"), nil
	}
	return string(content), nil
}
