package extract

import "fmt"

// UnsupportedFormatError is returned for file extensions the extractor does
// not handle, including image formats that are rejected by policy.
type UnsupportedFormatError struct {
	Ext    string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("unsupported file type: %s", e.Ext)
}

// ExtractionError is returned when a recognized file cannot be read or its
// content is unusable (corrupt PDF page, empty CSV, unreadable file).
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
