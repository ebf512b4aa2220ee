// Package extract provides text extraction from various document formats.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// textExts are read verbatim as UTF-8: plain text plus common source-code
// extensions.
var textExts = map[string]bool{
	".txt": true, ".md": true, ".rst": true, ".json": true,
	".py": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true,
	".go": true, ".rs": true, ".java": true, ".c": true, ".h": true,
	".sh": true, ".yaml": true, ".yml": true, ".toml": true,
}

// imageExts are recognized explicitly so that the error names the real
// limitation (no OCR) instead of a generic unsupported-type message.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".svg": true,
}

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content.
// Plain text and source files are returned as-is (UTF-8 validated).
// PDF, DOCX, XLSX, and CSV are converted to plain text. Image files are
// rejected with an UnsupportedFormatError, as is any unknown extension.
func (e *Extractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if imageExts[ext] {
		return "", &UnsupportedFormatError{
			Ext:    ext,
			Reason: fmt.Sprintf("image files (%s) are not supported: OCR is out of scope", ext),
		}
	}

	switch {
	case ext == ".pdf":
		return extractPDF(path)
	case ext == ".csv":
		return extractCSV(path)
	case ext == ".docx":
		return extractDOCX(path)
	case ext == ".xlsx":
		return extractExcel(path)
	case textExts[ext]:
		return extractPlain(path)
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// Supported reports whether the extractor handles files with the given
// extension (leading dot, any case). Image extensions are recognized but
// rejected, so they report false.
func (e *Extractor) Supported(ext string) bool {
	ext = strings.ToLower(ext)
	if imageExts[ext] {
		return false
	}
	switch ext {
	case ".pdf", ".csv", ".docx", ".xlsx":
		return true
	}
	return textExts[ext]
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}
	return content, nil
}
