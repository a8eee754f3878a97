package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/sellsense/knowbase/core"
	"github.com/sellsense/knowbase/storage"
)

// TrainingRepository implements storage.TrainingRepository for BadgerDB.
type TrainingRepository struct {
	backend *Backend
}

var _ storage.TrainingRepository = (*TrainingRepository)(nil)

// NewTrainingRepository creates a new TrainingRepository.
func NewTrainingRepository(backend *Backend) *TrainingRepository {
	return &TrainingRepository{backend: backend}
}

// SetTrainingMaterials stores the material set for an entity, replacing any
// previous set.
func (r *TrainingRepository) SetTrainingMaterials(ctx context.Context, entityID string, set *core.TrainingMaterialSet) error {
	set.EntityID = entityID
	if set.GeneratedAt.IsZero() {
		set.GeneratedAt = time.Now().UTC()
	}

	value, err := storage.MarshalTrainingMaterialSet(set)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeTrainingSetKey(entityID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetTrainingMaterials retrieves the material set for an entity.
func (r *TrainingRepository) GetTrainingMaterials(ctx context.Context, entityID string) (*core.TrainingMaterialSet, error) {
	var set *core.TrainingMaterialSet

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTrainingSetKey(entityID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			set, err = storage.UnmarshalTrainingMaterialSet(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return set, nil
}

// DeleteTrainingMaterials removes the material set for an entity.
func (r *TrainingRepository) DeleteTrainingMaterials(ctx context.Context, entityID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeTrainingSetKey(entityID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
