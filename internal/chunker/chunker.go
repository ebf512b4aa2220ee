// Package chunker splits text into overlapping word-based chunks.
package chunker

import "strings"

// Default chunking parameters, in words.
const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

// Chunker splits text into overlapping word windows suitable for embedding.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker with the given window size and overlap (in words).
// Non-positive size falls back to DefaultChunkSize; overlap is clamped so
// the stride stays >= 1.
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits text on whitespace and produces successive windows of
// chunkSize words, each window starting chunkSize-overlap words after the
// previous one, rejoined with single spaces. Text shorter than one window
// yields a single chunk; empty text yields nil. Identical input always
// yields an identical sequence.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	step := c.chunkSize - c.overlap
	chunks := make([]string, 0, (len(words)+step-1)/step)
	for i := 0; i < len(words); i += step {
		end := i + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end >= len(words) {
			break
		}
	}
	return chunks
}

// Size returns the configured window size in words.
func (c *Chunker) Size() int { return c.chunkSize }

// Overlap returns the configured overlap in words.
func (c *Chunker) Overlap() int { return c.overlap }
