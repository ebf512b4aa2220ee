// Package vector provides vector record storage and similarity search.
package vector

import "context"

// Record is one stored chunk: id, embedding, the chunk text, and metadata.
type Record struct {
	ID        string
	Embedding []float32
	Text      string
	Metadata  map[string]interface{}
}

// Match is a single query hit. Distance is cosine distance (0 = identical
// direction); results are ordered ascending.
type Match struct {
	ID       string
	Text     string
	Metadata map[string]interface{}
	Distance float64
}

// Entry is an (id, metadata) pair from a full scan, for listing and
// prefix-scoped deletion.
type Entry struct {
	ID       string
	Metadata map[string]interface{}
}

// Store persists chunk records and answers nearest-neighbor queries.
// Implementations must be safe for concurrent calls; each call is atomic.
type Store interface {
	// Upsert inserts records, replacing any existing record with the same ID.
	// Replacement never merges metadata from a previous record.
	Upsert(ctx context.Context, records []Record) error

	// Query returns up to k records ordered by ascending distance from the
	// given embedding. Fewer than k are returned when the store holds fewer
	// records.
	Query(ctx context.Context, embedding []float32, k int) ([]*Match, error)

	// List returns every stored (id, metadata) pair.
	List(ctx context.Context) ([]*Entry, error)

	// Delete removes records by ID. Deleting a non-existent ID is a no-op.
	Delete(ctx context.Context, ids []string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	Close() error
}
