// Package engine orchestrates document ingestion, similarity search, and
// document lifecycle over an extractor, chunker, embedder, and vector store.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/oboeru/internal/chunker"
	"github.com/hyperjump/oboeru/internal/docid"
	"github.com/hyperjump/oboeru/internal/embedding"
	"github.com/hyperjump/oboeru/internal/extract"
	"github.com/hyperjump/oboeru/internal/models"
	"github.com/hyperjump/oboeru/internal/vector"
	"github.com/hyperjump/oboeru/pkg/utils"
)

// DefaultResults is how many chunks a search returns when the caller does not
// say otherwise.
const DefaultResults = 3

// contextHeader opens every rendered context block.
const contextHeader = "Relevant information from your documents:"

// Engine is the retrieval engine: a stateless facade over the vector store.
// Each operation is an independent, synchronous pipeline; all durable state
// lives in the store.
type Engine struct {
	extractor      *extract.Extractor
	chunker        *chunker.Chunker
	embedder       embedding.Embedder
	store          vector.Store
	defaultResults int
	logger         *zap.Logger // optional; when set, logs debug events
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a logger for debug output (document added, search ran, etc.).
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDefaultResults sets the result count used when a search asks for <= 0.
func WithDefaultResults(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.defaultResults = n
		}
	}
}

// New creates an engine with the given dependencies.
func New(extractor *extract.Extractor, c *chunker.Chunker, embedder embedding.Embedder, store vector.Store, opts ...Option) *Engine {
	e := &Engine{
		extractor:      extractor,
		chunker:        c,
		embedder:       embedder,
		store:          store,
		defaultResults: DefaultResults,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddDocument ingests the file at path: extract, chunk, embed the chunks in
// one batch, and upsert all chunk records. The document id is derived from
// the file's base name, so re-adding a file re-upserts the same chunk ids.
// Extraction, embedding, and storage failures all come back as a failed
// result, never as a fault: ingestion is a batch operation and one bad file
// must not abort the batch. Chunk ids are deterministic, so a retry after a
// partial failure is safe.
func (e *Engine) AddDocument(ctx context.Context, path string, metadata map[string]interface{}) *models.AddResult {
	fileName := filepath.Base(path)
	if e.logger != nil {
		e.logger.Debug("adding document", zap.String("path", path))
	}

	text, err := e.extractor.Extract(path)
	if err != nil {
		return models.AddFailed(err)
	}
	chunks := e.chunker.Chunk(text)
	if len(chunks) == 0 {
		return models.AddFailed(fmt.Errorf("%s has no text content", fileName))
	}

	embeddings, err := e.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return models.AddFailed(fmt.Errorf("embedding failed: %w", err))
	}

	id := docid.FromFileName(fileName)
	records := make([]vector.Record, len(chunks))
	for i, chunk := range chunks {
		meta := make(map[string]interface{}, len(metadata)+4)
		for k, v := range metadata {
			meta[k] = v
		}
		meta[models.MetaFileName] = fileName
		meta[models.MetaFilePath] = path
		meta[models.MetaChunksCount] = len(chunks)
		meta[models.MetaChunkIndex] = i
		records[i] = vector.Record{
			ID:        docid.ChunkID(id, i),
			Embedding: embeddings[i],
			Text:      chunk,
			Metadata:  meta,
		}
	}
	if err := e.store.Upsert(ctx, records); err != nil {
		return models.AddFailed(fmt.Errorf("store failed: %w", err))
	}

	if e.logger != nil {
		e.logger.Debug("document added",
			zap.String("file_name", fileName),
			zap.String("doc_id", id),
			zap.Int("chunks", len(chunks)),
		)
	}
	return models.AddOK(fileName, len(chunks))
}

// Search embeds the query and returns up to n chunks ordered by ascending
// distance. Any underlying failure degrades to an empty result list:
// retrieval is advisory context for a chat turn and must never block it.
func (e *Engine) Search(ctx context.Context, query string, n int) []*models.SearchResult {
	if n <= 0 {
		n = e.defaultResults
	}
	queryEmbedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("search: embedding failed", zap.String("query", utils.Truncate(query, 80)), zap.Error(err))
		}
		return []*models.SearchResult{}
	}
	matches, err := e.store.Query(ctx, queryEmbedding, n)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("search: store query failed", zap.Error(err))
		}
		return []*models.SearchResult{}
	}
	results := make([]*models.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, &models.SearchResult{
			Text:     m.Text,
			Metadata: m.Metadata,
			Distance: m.Distance,
		})
	}
	return results
}

// ContextForQuery searches and renders the hits as a human-readable context
// block: a header line, then one "[Source i: file]" labelled chunk per hit,
// blank-line separated. Returns "" when there are no results; callers treat
// empty string as "omit context", not as an error.
func (e *Engine) ContextForQuery(ctx context.Context, query string, n int) string {
	results := e.Search(ctx, query, n)
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(contextHeader)
	b.WriteString("\n\n")
	for i, r := range results {
		fileName := models.MetadataString(r.Metadata, models.MetaFileName)
		if fileName == "" {
			fileName = "Unknown"
		}
		fmt.Fprintf(&b, "[Source %d: %s]\n%s\n\n", i+1, fileName, r.Text)
	}
	return b.String()
}

// ListDocuments scans the store and returns one summary per distinct
// file_name, in first-seen order. Multiple chunks of the same document
// collapse to a single entry. A store failure yields an empty list.
func (e *Engine) ListDocuments(ctx context.Context) []*models.DocumentSummary {
	entries, err := e.store.List(ctx)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("list documents failed", zap.Error(err))
		}
		return []*models.DocumentSummary{}
	}
	seen := make(map[string]bool)
	docs := make([]*models.DocumentSummary, 0)
	for _, entry := range entries {
		fileName := models.MetadataString(entry.Metadata, models.MetaFileName)
		if fileName == "" || seen[fileName] {
			continue
		}
		seen[fileName] = true
		docs = append(docs, &models.DocumentSummary{
			FileName:    fileName,
			FilePath:    models.MetadataString(entry.Metadata, models.MetaFilePath),
			ChunksCount: models.MetadataInt(entry.Metadata, models.MetaChunksCount),
		})
	}
	return docs
}

// DeleteDocument removes every chunk of the named document. The document id
// is recomputed from fileName with the same derivation as ingestion, and all
// stored ids carrying that chunk prefix are deleted. Reports a failure when
// no chunks match.
func (e *Engine) DeleteDocument(ctx context.Context, fileName string) *models.DeleteResult {
	id := docid.FromFileName(fileName)
	entries, err := e.store.List(ctx)
	if err != nil {
		return &models.DeleteResult{Success: false, Error: fmt.Sprintf("store failed: %v", err)}
	}
	prefix := docid.ChunkPrefix(id)
	ids := make([]string, 0)
	for _, entry := range entries {
		if strings.HasPrefix(entry.ID, prefix) {
			ids = append(ids, entry.ID)
		}
	}
	if len(ids) == 0 {
		return &models.DeleteResult{Success: false, Error: "Document not found"}
	}
	if err := e.store.Delete(ctx, ids); err != nil {
		return &models.DeleteResult{Success: false, Error: fmt.Sprintf("store failed: %v", err)}
	}
	if e.logger != nil {
		e.logger.Debug("document deleted", zap.String("file_name", fileName), zap.Int("chunks", len(ids)))
	}
	return &models.DeleteResult{
		Success: true,
		Message: fmt.Sprintf("Deleted %s (%d chunks)", fileName, len(ids)),
	}
}

// Counts returns the number of distinct documents and stored chunks.
func (e *Engine) Counts(ctx context.Context) (docs int, chunks int64, err error) {
	chunks, err = e.store.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	return len(e.ListDocuments(ctx)), chunks, nil
}
