// Package cli provides output helpers for the command boundary.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v to w as a single JSON document followed by a newline.
// Every command result crosses the boundary this way so the calling shell can
// parse stdout unconditionally.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

// WriteError writes the boundary error shape {"error": message} to w.
func WriteError(w io.Writer, message string) {
	_ = WriteJSON(w, map[string]string{"error": message})
}

// WriteErrorf formats and writes a boundary error.
func WriteErrorf(w io.Writer, format string, args ...interface{}) {
	WriteError(w, fmt.Sprintf(format, args...))
}
