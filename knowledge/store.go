// Copyright 2025 Sellsense Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/sellsense/knowbase/core"
	"github.com/sellsense/knowbase/extract"
	"github.com/sellsense/knowbase/storage"
	"github.com/sellsense/knowbase/vectorindex"
)

const (
	defaultSearchLimit       = 5
	defaultAnalyticsPoolSize = 4
)

// Store orchestrates the knowledge pipeline: extraction, chunking, vector
// indexing, and the document backend.
type Store struct {
	backend       storage.Backend
	index         vectorindex.Index
	extractor     *extract.Extractor
	analyticsPool *ants.Pool
	maxChunkChars int
	logger        *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithMaxChunkChars sets the chunk size bound used during ingestion.
// Default is extract.DefaultMaxChunkChars.
func WithMaxChunkChars(maxChars int) Option {
	return func(s *Store) error {
		if maxChars < 1 {
			return fmt.Errorf("chunk bound must be positive, got %d", maxChars)
		}
		s.maxChunkChars = maxChars
		return nil
	}
}

// WithAnalyticsPoolSize sets the worker pool size for asynchronous
// analytics writes. Default is 4.
func WithAnalyticsPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		if s.analyticsPool != nil {
			s.analyticsPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.analyticsPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a knowledge store on top of the given backend, vector
// index, and extractor.
func NewStore(backend storage.Backend, index vectorindex.Index, extractor *extract.Extractor, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	pool, err := ants.NewPool(defaultAnalyticsPoolSize)
	if err != nil {
		return nil, err
	}

	s := &Store{
		backend:       backend,
		index:         index,
		extractor:     extractor,
		analyticsPool: pool,
		maxChunkChars: extract.DefaultMaxChunkChars,
		logger:        slog.Default().With("component", "knowledge"),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	return s, nil
}

// Ingest processes a batch of files for an entity. Each file is isolated:
// a failure is recorded in its result and the rest of the batch continues.
// The returned slice has one result per input file, in input order.
func (s *Store) Ingest(ctx context.Context, entityID string, files []extract.File) ([]core.IngestResult, error) {
	if len(files) == 0 {
		return nil, core.ErrNoFiles
	}

	results := make([]core.IngestResult, 0, len(files))
	for _, file := range files {
		results = append(results, s.ingestOne(ctx, entityID, file))
	}
	return results, nil
}

func (s *Store) ingestOne(ctx context.Context, entityID string, file extract.File) core.IngestResult {
	result := core.IngestResult{Filename: file.Name}

	extraction, err := s.extractor.Extract(ctx, file)
	if err != nil {
		s.logger.Warn("extraction failed", "filename", file.Name, "error", err)
		result.Error = err.Error()
		return result
	}

	chunks := extract.ChunkText(extraction.RawText, s.maxChunkChars)
	uploadedAt := time.Now().UTC()
	docs := make([]vectorindex.Document, 0, len(chunks))
	for _, chunk := range chunks {
		docs = append(docs, vectorindex.Document{
			Text: chunk,
			Metadata: core.ChunkMetadata{
				Filename:    file.Name,
				EntityID:    entityID,
				ContentType: extraction.ContentType,
				UploadedAt:  uploadedAt,
			},
		})
	}

	chunkIDs, err := s.index.Add(ctx, docs)
	if err != nil {
		s.logger.Warn("indexing failed", "filename", file.Name, "error", err)
		result.Error = err.Error()
		return result
	}

	_, err = s.backend.AddKnowledgeDocuments(ctx, &core.KnowledgeDocument{
		Filename:    file.Name,
		EntityID:    entityID,
		ContentType: extraction.ContentType,
		RawText:     extraction.RawText,
		Structured:  extraction.Structured,
		ChunkCount:  len(chunks),
		ChunkIDs:    chunkIDs,
		SizeBytes:   int64(len(file.Data)),
		MimeType:    extraction.MimeType,
		ProcessedAt: uploadedAt,
	})
	if err != nil {
		// The chunks are already indexed; roll them back so a failed file
		// leaves no orphaned vectors.
		if delErr := s.index.Delete(ctx, chunkIDs); delErr != nil {
			s.logger.Warn("rollback of indexed chunks failed", "filename", file.Name, "error", delErr)
		}
		s.logger.Warn("storing document failed", "filename", file.Name, "error", err)
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.ChunksCreated = len(chunks)
	result.Structured = extraction.Structured
	return result
}

// Search embeds the query and returns up to limit hits ordered by
// similarity, each joined back to its owning document when the backend has
// it. A limit <= 0 uses the default of 5.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]core.SearchHit, error) {
	return s.SearchEntity(ctx, query, "", limit)
}

// SearchEntity is Search restricted to chunks belonging to one entity. An
// empty entityID searches everything.
func (s *Store) SearchEntity(ctx context.Context, query, entityID string, limit int) ([]core.SearchHit, error) {
	if err := core.ValidateSearchQuery(query); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	// The index ranks globally, so when filtering we over-fetch and trim.
	fetch := limit
	if entityID != "" {
		fetch = limit * 4
	}
	indexed, err := s.index.Search(ctx, query, fetch)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	hits := make([]core.SearchHit, 0, len(indexed))
	for _, found := range indexed {
		if entityID != "" && found.Metadata.EntityID != entityID {
			continue
		}
		if len(hits) == limit {
			break
		}
		hit := core.SearchHit{
			Text:       found.Text,
			Metadata:   found.Metadata,
			Similarity: found.Similarity,
		}

		// Document enrichment is best-effort; a hit without its document is
		// still a hit.
		doc, err := s.backend.GetKnowledgeByFilename(ctx, found.Metadata.Filename)
		if err == nil {
			hit.Document = doc
		} else if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("document enrichment failed", "filename", found.Metadata.Filename, "error", err)
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// GetKnowledge retrieves every stored document for an entity.
func (s *Store) GetKnowledge(ctx context.Context, entityID string) ([]*core.KnowledgeDocument, error) {
	if entityID == "" {
		return nil, core.ErrEmptyEntityID
	}
	return s.backend.GetKnowledgeByEntity(ctx, entityID)
}

// DeleteKnowledge removes an entity's documents, their indexed chunks, and
// its training materials. Returns the number of documents removed.
func (s *Store) DeleteKnowledge(ctx context.Context, entityID string) (int, error) {
	if entityID == "" {
		return 0, core.ErrEmptyEntityID
	}

	docs, err := s.backend.GetKnowledgeByEntity(ctx, entityID)
	if err != nil {
		return 0, err
	}

	var chunkIDs []string
	for _, doc := range docs {
		chunkIDs = append(chunkIDs, doc.ChunkIDs...)
	}
	if err := s.index.Delete(ctx, chunkIDs); err != nil {
		return 0, fmt.Errorf("deleting indexed chunks: %w", err)
	}

	deleted, err := s.backend.DeleteKnowledgeByEntity(ctx, entityID)
	if err != nil {
		return 0, err
	}
	if err := s.backend.DeleteTrainingMaterials(ctx, entityID); err != nil {
		return deleted, fmt.Errorf("deleting training materials: %w", err)
	}
	return deleted, nil
}

// SetTrainingMaterials stores the generated material set for an entity,
// replacing any previous set.
func (s *Store) SetTrainingMaterials(ctx context.Context, entityID string, set *core.TrainingMaterialSet) error {
	if entityID == "" {
		return core.ErrEmptyEntityID
	}
	return s.backend.SetTrainingMaterials(ctx, entityID, set)
}

// GetTrainingMaterials retrieves the stored material set for an entity.
func (s *Store) GetTrainingMaterials(ctx context.Context, entityID string) (*core.TrainingMaterialSet, error) {
	if entityID == "" {
		return nil, core.ErrEmptyEntityID
	}
	return s.backend.GetTrainingMaterials(ctx, entityID)
}

// RecordAnalytics validates the event and appends it asynchronously.
// Validation errors are returned synchronously; write errors are logged but
// never surfaced, so usage tracking cannot disturb the caller's operation.
func (s *Store) RecordAnalytics(ctx context.Context, event *core.AnalyticsEvent) error {
	if err := core.ValidateAnalyticsEvent(event); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	return s.analyticsPool.Submit(func() {
		if err := s.backend.AppendAnalyticsEvent(context.Background(), event); err != nil {
			s.logger.Error("error recording analytics event", "err", err)
		}
	})
}

// AnalyticsByUser retrieves a user's events, most recent first.
func (s *Store) AnalyticsByUser(ctx context.Context, userID string, limit int) ([]*core.AnalyticsEvent, error) {
	if userID == "" {
		return nil, core.ErrEmptyUserID
	}
	return s.backend.GetAnalyticsByUser(ctx, userID, limit)
}

// ClearAll wipes the vector index and the document backend. Both are
// attempted even if the first fails; the error names whichever parts broke.
func (s *Store) ClearAll(ctx context.Context) error {
	var indexErr, backendErr error
	if err := s.index.Clear(ctx); err != nil {
		indexErr = fmt.Errorf("clearing vector index: %w", err)
	}
	if err := s.backend.ClearAll(ctx); err != nil {
		backendErr = fmt.Errorf("clearing document store: %w", err)
	}
	return errors.Join(indexErr, backendErr)
}

// Stats reports counts from both the document backend and the vector index.
type Stats struct {
	Counts        storage.Counts   `json:"counts"`
	IndexedChunks int              `json:"indexedChunks"`
	IndexMode     vectorindex.Mode `json:"indexMode"`
}

// Stats reports the current state of the knowledge base.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.backend.Counts(ctx)
	if err != nil {
		return Stats{}, err
	}
	indexStats, err := s.index.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Counts:        counts,
		IndexedChunks: indexStats.DocumentCount,
		IndexMode:     indexStats.Mode,
	}, nil
}

// Release releases the analytics worker pool. The store should not be used
// after calling Release.
func (s *Store) Release() {
	if s.analyticsPool != nil {
		s.analyticsPool.Release()
	}
}
