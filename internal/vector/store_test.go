package vector

import (
	"context"
	"math"
	"path/filepath"
	"testing"
)

// storeUnderTest builds each Store implementation against the same contract.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chunks.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func rec(id string, emb []float32, text string, meta map[string]interface{}) Record {
	return Record{ID: id, Embedding: emb, Text: text, Metadata: meta}
}

func TestStore_queryOrdering(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Upsert(ctx, []Record{
				rec("far", []float32{-1, 0}, "far text", nil),
				rec("near", []float32{1, 0.01}, "near text", nil),
				rec("mid", []float32{0, 1}, "mid text", nil),
			})
			if err != nil {
				t.Fatalf("Upsert: %v", err)
			}
			matches, err := store.Query(ctx, []float32{1, 0}, 3)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(matches) != 3 {
				t.Fatalf("got %d matches", len(matches))
			}
			for i := 1; i < len(matches); i++ {
				if matches[i].Distance < matches[i-1].Distance {
					t.Errorf("distances not ascending: %v then %v", matches[i-1].Distance, matches[i].Distance)
				}
			}
			if matches[0].ID != "near" || matches[0].Text != "near text" {
				t.Errorf("nearest = %+v", matches[0])
			}
		})
	}
}

func TestStore_queryFewerThanK(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_ = store.Upsert(ctx, []Record{rec("only", []float32{1, 0}, "t", nil)})
			matches, err := store.Query(ctx, []float32{1, 0}, 10)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(matches) != 1 {
				t.Errorf("got %d matches, want 1", len(matches))
			}
		})
	}
}

func TestStore_upsertReplacesByID(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_ = store.Upsert(ctx, []Record{rec("a", []float32{1, 0}, "old", map[string]interface{}{"k": "v1", "stale": true})})
			_ = store.Upsert(ctx, []Record{rec("a", []float32{0, 1}, "new", map[string]interface{}{"k": "v2"})})

			n, err := store.Count(ctx)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if n != 1 {
				t.Errorf("count = %d, want 1", n)
			}
			matches, _ := store.Query(ctx, []float32{0, 1}, 1)
			if len(matches) != 1 || matches[0].Text != "new" {
				t.Fatalf("replacement not visible: %+v", matches)
			}
			// Replacement must not merge metadata from the earlier record.
			if _, ok := matches[0].Metadata["stale"]; ok {
				t.Error("metadata merged across upserts")
			}
			if matches[0].Metadata["k"] != "v2" {
				t.Errorf("metadata = %v", matches[0].Metadata)
			}
		})
	}
}

func TestStore_listAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_ = store.Upsert(ctx, []Record{
				rec("d1_chunk_0", []float32{1, 0}, "a", map[string]interface{}{"file_name": "a.txt"}),
				rec("d1_chunk_1", []float32{0, 1}, "b", map[string]interface{}{"file_name": "a.txt"}),
				rec("d2_chunk_0", []float32{1, 1}, "c", map[string]interface{}{"file_name": "b.txt"}),
			})
			entries, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("got %d entries", len(entries))
			}
			if entries[0].Metadata["file_name"] != "a.txt" {
				t.Errorf("metadata lost in listing: %+v", entries[0])
			}

			if err := store.Delete(ctx, []string{"d1_chunk_0", "d1_chunk_1", "missing"}); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			n, _ := store.Count(ctx)
			if n != 1 {
				t.Errorf("count after delete = %d, want 1", n)
			}
			entries, _ = store.List(ctx)
			if len(entries) != 1 || entries[0].ID != "d2_chunk_0" {
				t.Errorf("remaining entries: %+v", entries)
			}
		})
	}
}

func TestStore_deleteNonexistentIsNoop(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Delete(ctx, []string{"ghost"}); err != nil {
				t.Errorf("deleting unknown id should not error: %v", err)
			}
		})
	}
}

func TestSQLiteStore_persistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chunks.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Upsert(ctx, []Record{rec("a", []float32{0.25, -0.5}, "text", map[string]interface{}{"file_name": "a.txt"})}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	matches, err := s2.Query(ctx, []float32{0.25, -0.5}, 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 1 || matches[0].Text != "text" {
		t.Fatalf("record did not survive reopen: %+v", matches)
	}
	if matches[0].Distance > 1e-6 {
		t.Errorf("distance to itself = %v, want ~0", matches[0].Distance)
	}
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, 2},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 1},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 1},
		{"dimension mismatch", []float32{1}, []float32{1, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorCodecRoundTrip(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.14159, -0.0001}
	out := decodeVector(encodeVector(in))
	if len(out) != len(in) {
		t.Fatalf("length %d, want %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("index %d: %v != %v", i, in[i], out[i])
		}
	}
}

func TestNewStore_factory(t *testing.T) {
	if _, err := NewStore(StoreTypeMemory, ""); err != nil {
		t.Errorf("memory store: %v", err)
	}
	if _, err := NewStore(StoreTypeSQLite, ""); err == nil {
		t.Error("sqlite store without path should error")
	}
	if _, err := NewStore("bogus", ""); err == nil {
		t.Error("unknown store type should error")
	}
	s, err := NewStore("", filepath.Join(t.TempDir(), "db.sqlite"))
	if err != nil {
		t.Fatalf("default store: %v", err)
	}
	_ = s.Close()
}
