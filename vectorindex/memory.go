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


package vectorindex

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sellsense/knowbase/ai"
	"github.com/sellsense/knowbase/core"
)

// ErrNotFound is returned by Update when the target ID does not exist.
var ErrNotFound = errors.New("vector entry not found")

type memoryEntry struct {
	id       string
	text     string
	vector   []float32
	metadata core.ChunkMetadata
}

// Memory is an in-process Index doing exact brute-force cosine search.
// It is the fallback when the remote vector backend is unreachable, and
// holds everything in RAM with no persistence.
type Memory struct {
	mu       sync.RWMutex
	entries  []memoryEntry
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewMemory creates an empty in-process index.
func NewMemory(embedder ai.Embedder) (*Memory, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	return &Memory{
		embedder: embedder,
		logger:   slog.Default().With("component", "vectorindex.memory"),
	}, nil
}

func (m *Memory) Add(ctx context.Context, docs []Document) ([]string, error) {
	ids := make([]string, 0, len(docs))
	entries := make([]memoryEntry, 0, len(docs))

	for _, doc := range docs {
		vector := doc.Vector
		if vector == nil {
			vector = m.embed(ctx, doc.Text)
		}

		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}

		ids = append(ids, id)
		entries = append(entries, memoryEntry{
			id:       id,
			text:     doc.Text,
			vector:   vector,
			metadata: doc.Metadata,
		})
	}

	m.mu.Lock()
	m.entries = append(m.entries, entries...)
	m.mu.Unlock()

	return ids, nil
}

func (m *Memory) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVector := m.embed(ctx, query)
	if IsZeroVector(queryVector) {
		m.logger.Warn("query could not be embedded, returning no results")
		return nil, nil
	}

	m.mu.RLock()
	results := make([]Result, 0, len(m.entries))
	for _, entry := range m.entries {
		results = append(results, Result{
			ID:         entry.id,
			Text:       entry.text,
			Metadata:   entry.metadata,
			Similarity: CosineSimilarity(queryVector, entry.vector),
		})
	}
	m.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (m *Memory) Update(ctx context.Context, id, text string, metadata core.ChunkMetadata) error {
	vector := m.embed(ctx, text)

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].id == id {
			m.entries[i].text = text
			m.entries[i].vector = vector
			m.entries[i].metadata = metadata
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) Delete(_ context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	for _, entry := range m.entries {
		if _, ok := drop[entry.id]; !ok {
			kept = append(kept, entry)
		}
	}
	m.entries = kept
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
	return nil
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{DocumentCount: len(m.entries), Mode: ModeMemory}, nil
}

// embed runs the embedder and degrades to an all-zero vector on failure, so
// an embedding outage costs findability of the affected text but never aborts
// the calling operation.
func (m *Memory) embed(ctx context.Context, text string) []float32 {
	vector, err := m.embedder.EmbedText(ctx, text)
	if err != nil {
		m.logger.Warn("embedding failed, storing zero vector", "error", err)
		return make([]float32, m.dimension())
	}
	return vector
}

func (m *Memory) dimension() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, entry := range m.entries {
		if len(entry.vector) > 0 {
			return len(entry.vector)
		}
	}
	return 0
}

var _ Index = (*Memory)(nil)
