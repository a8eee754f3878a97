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


// Package knowbase assembles the product knowledge base: multi-format
// extraction, semantic search, a resilient document store, and sales
// training material synthesis.
//
// Open wires the whole pipeline. Every external dependency degrades rather
// than fails: an unreachable vector backend drops to an in-process index, a
// broken embedded database drops to JSON-file storage, and failed
// enrichment or generation calls substitute documented fallback values.
package knowbase

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/sellsense/knowbase/ai"
	"github.com/sellsense/knowbase/ai/openai"
	"github.com/sellsense/knowbase/extract"
	"github.com/sellsense/knowbase/knowledge"
	"github.com/sellsense/knowbase/storage"
	"github.com/sellsense/knowbase/storage/badger"
	"github.com/sellsense/knowbase/storage/jsonfile"
	"github.com/sellsense/knowbase/training"
	"github.com/sellsense/knowbase/vectorindex"
)

// KnowledgeBase is the assembled pipeline.
type KnowledgeBase struct {
	backend     storage.Backend
	provider    ai.Provider
	index       vectorindex.Index
	store       *knowledge.Store
	synthesizer *training.Synthesizer
	logger      *slog.Logger
}

type openOptions struct {
	aiConfig       *ai.Config
	provider       ai.Provider
	qdrant         vectorindex.QdrantConfig
	fallbackPolicy vectorindex.FallbackPolicy
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

// WithAIConfig sets the external-service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) OpenOption {
	return func(o *openOptions) { o.aiConfig = config }
}

// WithProvider injects an already-built service provider, bypassing
// WithAIConfig. Used by tests and callers with custom service stacks.
func WithProvider(provider ai.Provider) OpenOption {
	return func(o *openOptions) { o.provider = provider }
}

// WithQdrant points the vector index at a remote Qdrant instance. Without
// it, the in-process index is used from the start.
func WithQdrant(config vectorindex.QdrantConfig) OpenOption {
	return func(o *openOptions) { o.qdrant = config }
}

// WithVectorFallbackPolicy controls what happens when the remote vector
// backend is unreachable. Default is vectorindex.FallbackPermanent.
func WithVectorFallbackPolicy(policy vectorindex.FallbackPolicy) OpenOption {
	return func(o *openOptions) { o.fallbackPolicy = policy }
}

// Open assembles a knowledge base under dataDir. The embedded database
// lives in dataDir/db; if it cannot be opened, the JSON-file fallback store
// in dataDir/fallback takes over with a logged warning.
func Open(dataDir string, opts ...OpenOption) (*KnowledgeBase, error) {
	options := &openOptions{
		aiConfig:       ai.DefaultConfig(),
		fallbackPolicy: vectorindex.FallbackPermanent,
	}
	for _, opt := range opts {
		opt(options)
	}

	logger := slog.Default().With("component", "knowbase")

	var backend storage.Backend
	backend, err := badger.Open(filepath.Join(dataDir, "db"), false)
	if err != nil {
		logger.Warn("embedded database unavailable, using JSON file storage",
			"path", filepath.Join(dataDir, "db"), "error", err)
		backend, err = jsonfile.Open(filepath.Join(dataDir, "fallback"))
		if err != nil {
			return nil, err
		}
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			_ = backend.Close()
			return nil, err
		}
	}

	index, err := vectorindex.New(context.Background(), options.qdrant, provider.Embedder(),
		vectorindex.WithFallbackPolicy(options.fallbackPolicy))
	if err != nil {
		_ = provider.Close()
		_ = backend.Close()
		return nil, err
	}

	extractor, err := extract.NewExtractor(provider)
	if err != nil {
		_ = provider.Close()
		_ = backend.Close()
		return nil, err
	}

	store, err := knowledge.NewStore(backend, index, extractor)
	if err != nil {
		_ = provider.Close()
		_ = backend.Close()
		return nil, err
	}

	synthesizer, err := training.NewSynthesizer(provider.Completer(),
		training.WithAnalyticsRecorder(store))
	if err != nil {
		store.Release()
		_ = provider.Close()
		_ = backend.Close()
		return nil, err
	}

	return &KnowledgeBase{
		backend:     backend,
		provider:    provider,
		index:       index,
		store:       store,
		synthesizer: synthesizer,
		logger:      logger,
	}, nil
}

// Store returns the knowledge orchestration layer.
func (kb *KnowledgeBase) Store() *knowledge.Store {
	return kb.store
}

// Synthesizer returns the training material generator.
func (kb *KnowledgeBase) Synthesizer() *training.Synthesizer {
	return kb.synthesizer
}

// Provider returns the external-service provider.
func (kb *KnowledgeBase) Provider() ai.Provider {
	return kb.provider
}

// Index returns the vector index.
func (kb *KnowledgeBase) Index() vectorindex.Index {
	return kb.index
}

// Close releases worker pools, the service provider, and the storage
// backend.
func (kb *KnowledgeBase) Close() error {
	kb.synthesizer.Release()
	kb.store.Release()

	if err := kb.provider.Close(); err != nil {
		kb.logger.Error("error closing service provider", "err", err)
	}
	if err := kb.backend.Close(); err != nil {
		kb.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}
