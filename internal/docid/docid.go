// Package docid derives a deterministic document ID from a file name.
package docid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const prefix = "doc:"

// FromFileName returns a stable document ID for the given file name. The same
// name always yields the same ID, so re-ingesting a file re-upserts the same
// chunk IDs instead of accumulating duplicates. Hashing (rather than stripping
// characters from the name) keeps distinct names from colliding.
func FromFileName(fileName string) string {
	hash := sha256.Sum256([]byte(fileName))
	return prefix + hex.EncodeToString(hash[:])
}

// ChunkID returns the storage ID for chunk index of the given document.
func ChunkID(docID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", docID, index)
}

// ChunkPrefix returns the ID prefix shared by every chunk of the given
// document. Deletion scopes by this prefix.
func ChunkPrefix(docID string) string {
	return docID + "_chunk_"
}
