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
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/sellsense/knowbase/core"
	"github.com/sellsense/knowbase/storage"
)

// KnowledgeRepository implements storage.KnowledgeRepository for BadgerDB.
type KnowledgeRepository struct {
	backend *Backend
}

var _ storage.KnowledgeRepository = (*KnowledgeRepository)(nil)

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(backend *Backend) *KnowledgeRepository {
	return &KnowledgeRepository{backend: backend}
}

// AddKnowledgeDocuments stores documents under content-based IDs, so
// re-ingesting a filename replaces the earlier document.
func (r *KnowledgeRepository) AddKnowledgeDocuments(ctx context.Context, docs ...*core.KnowledgeDocument) ([]*core.KnowledgeDocument, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			if doc.Id == 0 {
				doc.Id = core.IDFromContent(doc.Filename)
			}
			if doc.ProcessedAt.IsZero() {
				doc.ProcessedAt = time.Now().UTC()
			}

			key := makeKnowledgeDocKey(doc.Id)

			// Drop the old entity index entry if the document moved entities.
			old, err := readKnowledgeDoc(tx, key)
			if err != nil {
				return err
			}
			if old != nil && old.EntityID != "" && old.EntityID != doc.EntityID {
				if err := tx.Delete(makeKnowledgeEntityKey(old.EntityID, old.Id)); err != nil {
					return err
				}
			}

			value, err := storage.MarshalKnowledgeDocument(doc)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}

			if doc.EntityID != "" {
				entityKey := makeKnowledgeEntityKey(doc.EntityID, doc.Id)
				if err := tx.Set(entityKey, storage.MarshalID(doc.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// GetKnowledgeDocument retrieves a single document by ID.
func (r *KnowledgeRepository) GetKnowledgeDocument(ctx context.Context, id core.ID) (*core.KnowledgeDocument, error) {
	var doc *core.KnowledgeDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		doc, err = readKnowledgeDoc(tx, makeKnowledgeDocKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, storage.ErrNotFound
	}
	return doc, nil
}

// GetKnowledgeByFilename retrieves the document ingested from the named file.
func (r *KnowledgeRepository) GetKnowledgeByFilename(ctx context.Context, filename string) (*core.KnowledgeDocument, error) {
	return r.GetKnowledgeDocument(ctx, core.IDFromContent(filename))
}

// GetKnowledgeByEntity retrieves every document tagged with the entity ID.
func (r *KnowledgeRepository) GetKnowledgeByEntity(ctx context.Context, entityID string) ([]*core.KnowledgeDocument, error) {
	var docs []*core.KnowledgeDocument

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialKnowledgeEntityKey(entityID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			doc, err := readKnowledgeDoc(tx, makeKnowledgeDocKey(id))
			if err != nil {
				return err
			}
			if doc != nil {
				docs = append(docs, doc)
			}
		}
		return nil
	}, false)

	return docs, err
}

// ListKnowledgeDocuments retrieves all stored documents.
func (r *KnowledgeRepository) ListKnowledgeDocuments(ctx context.Context) ([]*core.KnowledgeDocument, error) {
	var docs []*core.KnowledgeDocument

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(knowledgeDocPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.KnowledgeDocument
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalKnowledgeDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	}, false)

	return docs, err
}

// DeleteKnowledgeByEntity removes every document tagged with the entity ID.
func (r *KnowledgeRepository) DeleteKnowledgeByEntity(ctx context.Context, entityID string) (int, error) {
	deleted := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialKnowledgeEntityKey(entityID)
		iter := tx.NewIterator(opts)

		// Collect keys first; deleting while iterating invalidates the iterator.
		var docKeys, indexKeys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			indexKeys = append(indexKeys, item.KeyCopy(nil))

			var id core.ID
			err := item.Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				iter.Close()
				return err
			}
			docKeys = append(docKeys, makeKnowledgeDocKey(id))
		}
		iter.Close()

		for _, key := range docKeys {
			if err := tx.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		for _, key := range indexKeys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// readKnowledgeDoc reads a document within a transaction.
// Returns nil (no error) when the key does not exist.
func readKnowledgeDoc(tx *badger.Txn, key []byte) (*core.KnowledgeDocument, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.KnowledgeDocument
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalKnowledgeDocument(val)
		return err
	})
	return doc, err
}
