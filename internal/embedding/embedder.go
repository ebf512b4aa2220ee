// Package embedding provides text embedding via a local model server, with caching.
package embedding

import (
	"context"
	"hash/fnv"
)

// Embedder produces vector embeddings for text. Implementations must return
// one vector per input, in input order, with the same dimensionality across
// calls for the lifetime of an index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

// HashString returns a stable hash of s. Used for deterministic mock
// embeddings and cache diagnostics.
func HashString(s string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return int(h.Sum32())
}
