// Package models defines core data structures for documents, chunks, and operation results.
package models

// Metadata keys attached to every stored chunk.
const (
	MetaFileName    = "file_name"
	MetaFilePath    = "file_path"
	MetaChunksCount = "chunks_count"
	MetaChunkIndex  = "chunk_index"
)

// DocumentSummary is one entry in a document listing. A document exists only
// as the set of chunks sharing its derived id; the summary is rebuilt from
// chunk metadata on every listing.
type DocumentSummary struct {
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	ChunksCount int    `json:"chunks_count"`
}

// Chunk is the atomic retrievable unit: one overlapping word window of a
// source document, with its embedding and a copy of the document metadata.
type Chunk struct {
	ID         string                 `json:"id"`
	DocumentID string                 `json:"document_id"`
	Text       string                 `json:"text"`
	ChunkIndex int                    `json:"chunk_index"`
	Embedding  []float32              `json:"-"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// MetadataInt returns m[key] coerced to int. Metadata round-trips through
// JSON, so numeric values may come back as float64.
func MetadataInt(m map[string]interface{}, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// MetadataString returns m[key] as a string, or "" when absent or not a string.
func MetadataString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
