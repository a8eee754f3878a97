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


package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/sellsense/knowbase/core"
	"github.com/sellsense/knowbase/storage"
)

const (
	knowledgeFile = "knowledge.json"
	trainingFile  = "training.json"
	analyticsFile = "analytics.json"
)

// Store is the degraded storage.Backend: one JSON array file per record
// kind under a data directory. Every write is a read-modify-write of the
// whole file under a single mutex, which is acceptable for the fallback's
// small data volumes. Files only accumulate; nothing truncates them except
// ClearAll.
type Store struct {
	mu     sync.Mutex
	dir    string
	closed bool
	logger *slog.Logger
}

var _ storage.Backend = (*Store)(nil)

// Open prepares the data directory and returns a file-backed store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: slog.Default().With("component", "storage.jsonfile"),
	}, nil
}

// AddKnowledgeDocuments stores documents, replacing any earlier document
// with the same filename.
func (s *Store) AddKnowledgeDocuments(ctx context.Context, docs ...*core.KnowledgeDocument) ([]*core.KnowledgeDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	existing, err := readArray[core.KnowledgeDocument](s.path(knowledgeFile))
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if doc.Id == 0 {
			doc.Id = core.IDFromContent(doc.Filename)
		}
		if doc.ProcessedAt.IsZero() {
			doc.ProcessedAt = time.Now().UTC()
		}

		replaced := false
		for i := range existing {
			if existing[i].Id == doc.Id {
				existing[i] = *doc
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, *doc)
		}
	}

	if err := writeArray(s.path(knowledgeFile), existing); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetKnowledgeDocument retrieves a single document by ID.
func (s *Store) GetKnowledgeDocument(ctx context.Context, id core.ID) (*core.KnowledgeDocument, error) {
	docs, err := s.readKnowledge()
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].Id == id {
			return &docs[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetKnowledgeByFilename retrieves the document ingested from the named file.
func (s *Store) GetKnowledgeByFilename(ctx context.Context, filename string) (*core.KnowledgeDocument, error) {
	return s.GetKnowledgeDocument(ctx, core.IDFromContent(filename))
}

// GetKnowledgeByEntity retrieves every document tagged with the entity ID.
func (s *Store) GetKnowledgeByEntity(ctx context.Context, entityID string) ([]*core.KnowledgeDocument, error) {
	docs, err := s.readKnowledge()
	if err != nil {
		return nil, err
	}
	var matched []*core.KnowledgeDocument
	for i := range docs {
		if docs[i].EntityID == entityID {
			matched = append(matched, &docs[i])
		}
	}
	return matched, nil
}

// ListKnowledgeDocuments retrieves all stored documents.
func (s *Store) ListKnowledgeDocuments(ctx context.Context) ([]*core.KnowledgeDocument, error) {
	docs, err := s.readKnowledge()
	if err != nil {
		return nil, err
	}
	out := make([]*core.KnowledgeDocument, len(docs))
	for i := range docs {
		out[i] = &docs[i]
	}
	return out, nil
}

// DeleteKnowledgeByEntity removes every document tagged with the entity ID.
func (s *Store) DeleteKnowledgeByEntity(ctx context.Context, entityID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, storage.ErrStorageClosed
	}

	docs, err := readArray[core.KnowledgeDocument](s.path(knowledgeFile))
	if err != nil {
		return 0, err
	}

	kept := docs[:0]
	deleted := 0
	for _, doc := range docs {
		if doc.EntityID == entityID {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	if deleted == 0 {
		return 0, nil
	}
	if err := writeArray(s.path(knowledgeFile), kept); err != nil {
		return 0, err
	}
	return deleted, nil
}

// SetTrainingMaterials stores the material set for an entity, replacing any
// previous set.
func (s *Store) SetTrainingMaterials(ctx context.Context, entityID string, set *core.TrainingMaterialSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}

	set.EntityID = entityID
	if set.GeneratedAt.IsZero() {
		set.GeneratedAt = time.Now().UTC()
	}

	sets, err := readArray[core.TrainingMaterialSet](s.path(trainingFile))
	if err != nil {
		return err
	}

	replaced := false
	for i := range sets {
		if sets[i].EntityID == entityID {
			sets[i] = *set
			replaced = true
			break
		}
	}
	if !replaced {
		sets = append(sets, *set)
	}
	return writeArray(s.path(trainingFile), sets)
}

// GetTrainingMaterials retrieves the material set for an entity.
func (s *Store) GetTrainingMaterials(ctx context.Context, entityID string) (*core.TrainingMaterialSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	sets, err := readArray[core.TrainingMaterialSet](s.path(trainingFile))
	if err != nil {
		return nil, err
	}
	for i := range sets {
		if sets[i].EntityID == entityID {
			return &sets[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

// DeleteTrainingMaterials removes the material set for an entity.
func (s *Store) DeleteTrainingMaterials(ctx context.Context, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}

	sets, err := readArray[core.TrainingMaterialSet](s.path(trainingFile))
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(sets, func(set core.TrainingMaterialSet) bool {
		return set.EntityID == entityID
	})
	return writeArray(s.path(trainingFile), kept)
}

// AppendAnalyticsEvent stores one event at the end of the analytics file.
func (s *Store) AppendAnalyticsEvent(ctx context.Context, event *core.AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	events, err := readArray[core.AnalyticsEvent](s.path(analyticsFile))
	if err != nil {
		return err
	}
	events = append(events, *event)
	return writeArray(s.path(analyticsFile), events)
}

// GetAnalyticsByUser retrieves events for a user, most recent first.
func (s *Store) GetAnalyticsByUser(ctx context.Context, userID string, limit int) ([]*core.AnalyticsEvent, error) {
	events, err := s.readAnalytics()
	if err != nil {
		return nil, err
	}

	var matched []*core.AnalyticsEvent
	for i := range events {
		if events[i].UserID == userID {
			matched = append(matched, &events[i])
		}
	}
	slices.SortStableFunc(matched, func(a, b *core.AnalyticsEvent) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// GetAnalyticsByDateRange retrieves events where start <= Timestamp < end.
func (s *Store) GetAnalyticsByDateRange(ctx context.Context, start, end time.Time) ([]*core.AnalyticsEvent, error) {
	events, err := s.readAnalytics()
	if err != nil {
		return nil, err
	}

	var matched []*core.AnalyticsEvent
	for i := range events {
		ts := events[i].Timestamp
		if !ts.Before(start) && ts.Before(end) {
			matched = append(matched, &events[i])
		}
	}
	slices.SortStableFunc(matched, func(a, b *core.AnalyticsEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return matched, nil
}

// Counts reports how many records of each kind are stored.
func (s *Store) Counts(ctx context.Context) (storage.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.Counts{}, storage.ErrStorageClosed
	}

	docs, err := readArray[core.KnowledgeDocument](s.path(knowledgeFile))
	if err != nil {
		return storage.Counts{}, err
	}
	sets, err := readArray[core.TrainingMaterialSet](s.path(trainingFile))
	if err != nil {
		return storage.Counts{}, err
	}
	events, err := readArray[core.AnalyticsEvent](s.path(analyticsFile))
	if err != nil {
		return storage.Counts{}, err
	}

	return storage.Counts{
		Documents:       len(docs),
		TrainingSets:    len(sets),
		AnalyticsEvents: len(events),
	}, nil
}

// ClearAll truncates all three files to empty arrays.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}

	for _, name := range []string{knowledgeFile, trainingFile, analyticsFile} {
		if err := writeRaw(s.path(name), []byte("[]")); err != nil {
			return err
		}
	}
	return nil
}

// Close marks the store closed. Files stay on disk.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) readKnowledge() ([]core.KnowledgeDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	return readArray[core.KnowledgeDocument](s.path(knowledgeFile))
}

func (s *Store) readAnalytics() ([]core.AnalyticsEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	return readArray[core.AnalyticsEvent](s.path(analyticsFile))
}

// readArray loads a JSON array file. A missing file is an empty array.
func readArray[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", storage.ErrSerializationFailed, filepath.Base(path), err)
	}
	return records, nil
}

// writeArray persists a JSON array file via a temp-file rename so a crash
// mid-write cannot leave a torn file.
func writeArray[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return writeRaw(path, data)
}

func writeRaw(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
