package vector

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store using brute-force cosine search.
// Suitable for tests and small document sets; nothing survives the process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string // insertion order, so List is stable
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Upsert inserts records, replacing existing IDs in place.
func (m *MemoryStore) Upsert(ctx context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		if _, exists := m.records[r.ID]; !exists {
			m.order = append(m.order, r.ID)
		}
		emb := make([]float32, len(r.Embedding))
		copy(emb, r.Embedding)
		meta := make(map[string]interface{}, len(r.Metadata))
		for k, v := range r.Metadata {
			meta[k] = v
		}
		m.records[r.ID] = Record{ID: r.ID, Embedding: emb, Text: r.Text, Metadata: meta}
	}
	return nil
}

// Query scans all records and returns the k nearest by cosine distance.
func (m *MemoryStore) Query(ctx context.Context, embedding []float32, k int) ([]*Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if k <= 0 || len(m.records) == 0 {
		return nil, nil
	}
	matches := make([]*Match, 0, len(m.records))
	for _, id := range m.order {
		r := m.records[id]
		matches = append(matches, &Match{
			ID:       r.ID,
			Text:     r.Text,
			Metadata: r.Metadata,
			Distance: CosineDistance(embedding, r.Embedding),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

// List returns every (id, metadata) pair in insertion order.
func (m *MemoryStore) List(ctx context.Context) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*Entry, 0, len(m.order))
	for _, id := range m.order {
		r := m.records[id]
		entries = append(entries, &Entry{ID: r.ID, Metadata: r.Metadata})
	}
	return entries, nil
}

// Delete removes records by ID; unknown IDs are ignored.
func (m *MemoryStore) Delete(ctx context.Context, ids []string) error {
	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.order[:0]
	for _, id := range m.order {
		if remove[id] {
			delete(m.records, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return nil
}

// Count returns the number of stored records.
func (m *MemoryStore) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.records)), nil
}

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error {
	return nil
}
