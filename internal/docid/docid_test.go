package docid

import (
	"strings"
	"testing"
)

func TestFromFileName_deterministic(t *testing.T) {
	a := FromFileName("report v1.pdf")
	b := FromFileName("report v1.pdf")
	if a != b {
		t.Errorf("same name should give same ID: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "doc:") {
		t.Errorf("missing prefix: %q", a)
	}
}

func TestFromFileName_distinctNamesDistinctIDs(t *testing.T) {
	// Names that a character-stripping scheme would conflate must not collide.
	pairs := [][2]string{
		{"a.txt", "b.txt"},
		{"report v1.pdf", "report.v1.pdf"},
		{"notes.md", "notes md"},
	}
	for _, p := range pairs {
		if FromFileName(p[0]) == FromFileName(p[1]) {
			t.Errorf("IDs collide for %q and %q", p[0], p[1])
		}
	}
}

func TestChunkID(t *testing.T) {
	doc := FromFileName("notes.txt")
	id := ChunkID(doc, 3)
	if id != doc+"_chunk_3" {
		t.Errorf("got %q", id)
	}
	if !strings.HasPrefix(id, ChunkPrefix(doc)) {
		t.Error("chunk ID should carry the chunk prefix")
	}
}

func TestChunkPrefix_scopesExactDocument(t *testing.T) {
	// A prefix match on ChunkPrefix must never select another document's
	// chunks, even one whose name shares a prefix.
	a := ChunkPrefix(FromFileName("data"))
	b := ChunkID(FromFileName("data.csv"), 0)
	if strings.HasPrefix(b, a) {
		t.Error("chunk of a different document matched the prefix")
	}
}
