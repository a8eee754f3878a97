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


package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/sellsense/knowbase/storage"
)

// Store is the full storage.Backend on top of BadgerDB.
type Store struct {
	*KnowledgeRepository
	*TrainingRepository
	*AnalyticsRepository

	backend *Backend
}

var _ storage.Backend = (*Store)(nil)

// Open opens (or creates) the database at path and wires up the
// repositories. Pass inMemory=true for an ephemeral database in tests.
func Open(path string, inMemory bool) (*Store, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	analytics, err := NewAnalyticsRepository(backend)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	return &Store{
		KnowledgeRepository: NewKnowledgeRepository(backend),
		TrainingRepository:  NewTrainingRepository(backend),
		AnalyticsRepository: analytics,
		backend:             backend,
	}, nil
}

// Counts reports how many records of each kind are stored.
func (s *Store) Counts(ctx context.Context) (storage.Counts, error) {
	var counts storage.Counts

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		counts.Documents = countPrefix(tx, knowledgeDocPrefix+":")
		counts.TrainingSets = countPrefix(tx, trainingSetPrefix+":")
		counts.AnalyticsEvents = countPrefix(tx, analyticsPrefix+":")
		return nil
	}, false)

	return counts, err
}

// ClearAll removes every record of every kind.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.backend.DropAll()
}

// Close releases the analytics sequence and closes the database.
func (s *Store) Close() error {
	if err := s.AnalyticsRepository.Close(); err != nil {
		_ = s.backend.Close()
		return err
	}
	return s.backend.Close()
}

func countPrefix(tx *badger.Txn, prefix string) int {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	count := 0
	for iter.Rewind(); iter.Valid(); iter.Next() {
		count++
	}
	return count
}
