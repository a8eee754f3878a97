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
	"math"

	"github.com/sellsense/knowbase/core"
)

// Mode identifies which backend an Index instance is running on.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeMemory Mode = "memory"
)

// Document is one chunk to index. Vector may be nil; the index embeds the
// text itself before storing, so the in-process fallback path also has
// vectors. ID may be empty; the index generates one.
type Document struct {
	ID       string
	Text     string
	Vector   []float32
	Metadata core.ChunkMetadata
}

// Result is one search hit, ordered descending by similarity.
type Result struct {
	ID         string
	Text       string
	Metadata   core.ChunkMetadata
	Similarity float32
}

// Stats describes the current state of an index.
type Stats struct {
	DocumentCount int
	Mode          Mode
}

// Index stores (vector, text, metadata) tuples and answers nearest-neighbor
// queries. The remote-backed and in-process implementations satisfy this
// contract interchangeably.
type Index interface {
	// Add indexes the documents, embedding any that arrive without a vector.
	// Returns the stored IDs in input order.
	Add(ctx context.Context, docs []Document) ([]string, error)

	// Search embeds the query and returns up to k results ordered descending
	// by similarity.
	Search(ctx context.Context, query string, k int) ([]Result, error)

	// Update replaces the text and metadata of an existing entry, re-embedding
	// the text.
	Update(ctx context.Context, id, text string, metadata core.ChunkMetadata) error

	// Delete removes entries by ID. Unknown IDs are ignored.
	Delete(ctx context.Context, ids []string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Stats reports the entry count and operating mode.
	Stats(ctx context.Context) (Stats, error)
}

// ErrEmbedderRequired is returned when an embedder is not provided.
var ErrEmbedderRequired = errors.New("embedder required")

// CosineSimilarity computes dot(a,b) / (||a|| * ||b||).
// Returns 0 if either vector has zero norm: an all-zero vector means
// "unembeddable", never a valid near-origin point.
func CosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// IsZeroVector reports whether every component of v is zero.
func IsZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
