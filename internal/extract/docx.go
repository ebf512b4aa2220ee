package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// docxDefaultDocumentPath is the usual location of the main document body
// inside a .docx package.
const docxDefaultDocumentPath = "word/document.xml"

const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// docxTextRun matches <w:t>text</w:t> including runs with attributes such as
// xml:space="preserve". Matching text nodes directly keeps content extractable
// regardless of paragraph or run attributes.
var docxTextRun = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

var docxPartName = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)

// docxPartNameAlt handles Override elements with ContentType before PartName.
var docxPartNameAlt = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)

// extractDOCX extracts text from a .docx file: a ZIP containing OOXML, with
// the document body at the part named in [Content_Types].xml (or the default
// word/document.xml). All <w:t> text nodes are joined with spaces.
func extractDOCX(path string) (string, error) {
	content, err := readFile(path)
	if err != nil {
		return "", err
	}
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ExtractionError{Path: path, Err: fmt.Errorf("not a DOCX zip: %w", err)}
	}

	docPath := docxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDefaultDocumentPath
	}
	docXML, err := readZipFile(zr, docPath)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	if docXML == nil {
		return "", &ExtractionError{Path: path, Err: fmt.Errorf("%s not found in DOCX", docPath)}
	}

	runs := docxTextRun.FindAllSubmatch(docXML, -1)
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.Write(bytes.TrimSpace(r[1]))
	}
	return strings.TrimSpace(b.String()), nil
}

// docxMainDocumentPath reads [Content_Types].xml to find the main document
// part. Returns the path without its leading slash, or "" when not found.
func docxMainDocumentPath(zr *zip.Reader) string {
	data, err := readZipFile(zr, "[Content_Types].xml")
	if err != nil || data == nil {
		return ""
	}
	if m := docxPartName.FindSubmatch(data); len(m) > 1 {
		return strings.TrimPrefix(string(m[1]), "/")
	}
	if m := docxPartNameAlt.FindSubmatch(data); len(m) > 1 {
		return strings.TrimPrefix(string(m[1]), "/")
	}
	return ""
}

// readZipFile returns the contents of name inside zr, or nil when absent.
func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, nil
}
