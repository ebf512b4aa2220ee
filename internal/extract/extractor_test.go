package extract

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestExtract_plainText(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"txt", "notes.txt", "hello world\nsecond line"},
		{"markdown", "readme.md", "# Title\n\nBody text."},
		{"json", "data.json", `{"key": "value"}`},
		{"source code", "main.go", "package main\n\nfunc main() {}\n"},
	}
	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.content)
			got, err := e.Extract(path)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got != tt.content {
				t.Errorf("content changed: got %q, want %q", got, tt.content)
			}
		})
	}
}

func TestExtract_invalidUTF8Replaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte{'h', 'i', 0xff, 0xfe, '!'}, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := NewExtractor().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.HasPrefix(got, "hi") || !strings.HasSuffix(got, "!") {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestExtract_unsupportedExtension(t *testing.T) {
	path := writeTemp(t, "archive.tar", "not really a tar")
	_, err := NewExtractor().Extract(path)
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("want UnsupportedFormatError, got %v", err)
	}
	if unsupported.Ext != ".tar" {
		t.Errorf("error should name the extension: %v", unsupported)
	}
}

func TestExtract_imagesRejectedWithOCRMessage(t *testing.T) {
	for _, name := range []string{"photo.png", "photo.jpg", "icon.svg"} {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, name, "binary-ish")
			_, err := NewExtractor().Extract(path)
			var unsupported *UnsupportedFormatError
			if !errors.As(err, &unsupported) {
				t.Fatalf("want UnsupportedFormatError, got %v", err)
			}
			if !strings.Contains(err.Error(), "OCR") {
				t.Errorf("error should mention OCR: %v", err)
			}
		})
	}
}

func TestExtract_missingFile(t *testing.T) {
	_, err := NewExtractor().Extract(filepath.Join(t.TempDir(), "nope.txt"))
	var extraction *ExtractionError
	if !errors.As(err, &extraction) {
		t.Fatalf("want ExtractionError, got %v", err)
	}
}

func TestExtractCSV(t *testing.T) {
	e := NewExtractor()

	t.Run("empty file is an error", func(t *testing.T) {
		path := writeTemp(t, "empty.csv", "")
		_, err := e.Extract(path)
		var extraction *ExtractionError
		if !errors.As(err, &extraction) {
			t.Fatalf("want ExtractionError, got %v", err)
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("error should say the file is empty: %v", err)
		}
	})

	t.Run("whitespace-only file is an error", func(t *testing.T) {
		path := writeTemp(t, "blank.csv", "  \n\t\n  ")
		if _, err := e.Extract(path); err == nil {
			t.Fatal("want error for whitespace-only CSV")
		}
	})

	t.Run("header prefix and blank lines dropped", func(t *testing.T) {
		path := writeTemp(t, "data.csv", "a,b,c\n\n1,2,3\n\n")
		got, err := e.Extract(path)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		want := "CSV Data:\na,b,c\n1,2,3"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("capped at 200 lines", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 500; i++ {
			b.WriteString("row,row,row\n")
		}
		path := writeTemp(t, "big.csv", b.String())
		got, err := e.Extract(path)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		lines := strings.Split(got, "\n")
		// header plus at most 200 data lines
		if len(lines) != 201 {
			t.Errorf("got %d lines, want 201", len(lines))
		}
	})

	t.Run("all-blank head yields sentinel", func(t *testing.T) {
		// First 200 lines blank, content beyond the cap.
		content := strings.Repeat(" \n", 250) + "late,row\n"
		path := writeTemp(t, "late.csv", content)
		got, err := e.Extract(path)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if got != "CSV Data: Empty file" {
			t.Errorf("got %q, want sentinel", got)
		}
	})
}

func TestExtractDOCX(t *testing.T) {
	makeDocx := func(t *testing.T, files map[string]string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "doc.docx")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		zw := zip.NewWriter(f)
		for name, content := range files {
			w, err := zw.Create(name)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := w.Write([]byte(content)); err != nil {
				t.Fatal(err)
			}
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("text runs with attributes", func(t *testing.T) {
		path := makeDocx(t, map[string]string{
			"word/document.xml": `<w:document><w:p w:rsidR="00A"><w:r><w:t>Hello</w:t></w:r>` +
				`<w:r><w:t xml:space="preserve">world</w:t></w:r></w:p></w:document>`,
		})
		got, err := NewExtractor().Extract(path)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if got != "Hello world" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		path := writeTemp(t, "fake.docx", "plain bytes")
		_, err := NewExtractor().Extract(path)
		var extraction *ExtractionError
		if !errors.As(err, &extraction) {
			t.Fatalf("want ExtractionError, got %v", err)
		}
	})

	t.Run("missing document body", func(t *testing.T) {
		path := makeDocx(t, map[string]string{"other.xml": "<x/>"})
		if _, err := NewExtractor().Extract(path); err == nil {
			t.Fatal("want error when word/document.xml is missing")
		}
	})
}

func TestSupported(t *testing.T) {
	e := NewExtractor()
	for ext, want := range map[string]bool{
		".txt": true, ".PDF": true, ".csv": true, ".docx": true,
		".xlsx": true, ".go": true, ".png": false, ".exe": false,
	} {
		if got := e.Supported(ext); got != want {
			t.Errorf("Supported(%q) = %v, want %v", ext, got, want)
		}
	}
}
