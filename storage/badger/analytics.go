package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/sellsense/knowbase/core"
	"github.com/sellsense/knowbase/storage"
)

// AnalyticsRepository implements storage.AnalyticsRepository for BadgerDB.
// Events are append-only; sequence IDs give them stable storage keys, and
// date and user indices serve the two query shapes.
type AnalyticsRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.AnalyticsRepository = (*AnalyticsRepository)(nil)

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(backend *Backend) (*AnalyticsRepository, error) {
	idSeq, err := backend.GetSequence(analyticsIDSeq)
	if err != nil {
		return nil, err
	}
	return &AnalyticsRepository{backend: backend, idSeq: idSeq}, nil
}

// Close releases the ID sequence.
func (r *AnalyticsRepository) Close() error {
	return r.idSeq.Release()
}

// AppendAnalyticsEvent stores one event.
func (r *AnalyticsRepository) AppendAnalyticsEvent(ctx context.Context, event *core.AnalyticsEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}

		value, err := storage.MarshalAnalyticsEvent(event)
		if err != nil {
			return err
		}
		if err := tx.Set(makeAnalyticsKey(nextID), value); err != nil {
			return err
		}

		dateKey := makeAnalyticsDateKey(event.Timestamp, nextID)
		if err := tx.Set(dateKey, storage.MarshalID(core.ID(nextID))); err != nil {
			return err
		}

		if event.UserID != "" {
			userKey := makeAnalyticsUserKey(event.UserID, event.Timestamp, nextID)
			if err := tx.Set(userKey, storage.MarshalID(core.ID(nextID))); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetAnalyticsByUser retrieves events for a user, most recent first.
func (r *AnalyticsRepository) GetAnalyticsByUser(ctx context.Context, userID string, limit int) ([]*core.AnalyticsEvent, error) {
	var events []*core.AnalyticsEvent

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialAnalyticsUserKey(userID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			event, err := readAnalyticsEvent(tx, iter.Item())
			if err != nil {
				return err
			}
			if event != nil {
				events = append(events, event)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// The index is ordered ascending by timestamp; callers want most recent
	// first.
	slices.Reverse(events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// GetAnalyticsByDateRange retrieves events where start <= Timestamp < end.
func (r *AnalyticsRepository) GetAnalyticsByDateRange(ctx context.Context, start, end time.Time) ([]*core.AnalyticsEvent, error) {
	var events []*core.AnalyticsEvent

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(analyticsDatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		startKey := makePartialAnalyticsDateKey(start)
		endKey := makePartialAnalyticsDateKey(end)

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			item := iter.Item()
			if string(item.Key()[:len(endKey)]) >= string(endKey) {
				break
			}
			event, err := readAnalyticsEvent(tx, item)
			if err != nil {
				return err
			}
			if event != nil {
				events = append(events, event)
			}
		}
		return nil
	}, false)

	return events, err
}

// readAnalyticsEvent resolves an index entry to its event record.
func readAnalyticsEvent(tx *badger.Txn, indexItem *badger.Item) (*core.AnalyticsEvent, error) {
	var id core.ID
	err := indexItem.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	item, err := tx.Get(makeAnalyticsKey(uint64(id)))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var event *core.AnalyticsEvent
	err = item.Value(func(val []byte) error {
		var err error
		event, err = storage.UnmarshalAnalyticsEvent(val)
		return err
	})
	return event, err
}
