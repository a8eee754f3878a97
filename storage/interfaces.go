package storage

import (
	"context"
	"time"

	"github.com/sellsense/knowbase/core"
)

// Counts summarizes the contents of a backend.
type Counts struct {
	Documents       int `json:"documents"`
	TrainingSets    int `json:"trainingSets"`
	AnalyticsEvents int `json:"analyticsEvents"`
}

// KnowledgeRepository provides operations for managing knowledge documents.
// Implementations must be safe for concurrent use.
type KnowledgeRepository interface {
	// AddKnowledgeDocuments stores one or more documents. IDs are
	// content-based (IDFromContent of the filename), so re-ingesting a file
	// replaces its previous document. Sets ProcessedAt if not already set.
	AddKnowledgeDocuments(ctx context.Context, docs ...*core.KnowledgeDocument) ([]*core.KnowledgeDocument, error)

	// GetKnowledgeDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetKnowledgeDocument(ctx context.Context, id core.ID) (*core.KnowledgeDocument, error)

	// GetKnowledgeByFilename retrieves the document ingested from the named
	// file. Returns ErrNotFound if no such document exists.
	GetKnowledgeByFilename(ctx context.Context, filename string) (*core.KnowledgeDocument, error)

	// GetKnowledgeByEntity retrieves every document tagged with the entity ID.
	GetKnowledgeByEntity(ctx context.Context, entityID string) ([]*core.KnowledgeDocument, error)

	// ListKnowledgeDocuments retrieves all stored documents.
	ListKnowledgeDocuments(ctx context.Context) ([]*core.KnowledgeDocument, error)

	// DeleteKnowledgeByEntity removes every document tagged with the entity
	// ID. Returns the number of documents removed.
	DeleteKnowledgeByEntity(ctx context.Context, entityID string) (int, error)
}

// TrainingRepository provides operations for managing generated training
// material sets, keyed by entity.
type TrainingRepository interface {
	// SetTrainingMaterials stores the material set for an entity, replacing
	// any previous set.
	SetTrainingMaterials(ctx context.Context, entityID string, set *core.TrainingMaterialSet) error

	// GetTrainingMaterials retrieves the material set for an entity.
	// Returns ErrNotFound if none was stored.
	GetTrainingMaterials(ctx context.Context, entityID string) (*core.TrainingMaterialSet, error)

	// DeleteTrainingMaterials removes the material set for an entity.
	// Removing a missing set is not an error.
	DeleteTrainingMaterials(ctx context.Context, entityID string) error
}

// AnalyticsRepository provides append-oriented storage for usage events.
type AnalyticsRepository interface {
	// AppendAnalyticsEvent stores one event. Sets Timestamp if not already
	// set. Events are never updated in place.
	AppendAnalyticsEvent(ctx context.Context, event *core.AnalyticsEvent) error

	// GetAnalyticsByUser retrieves events for a user, most recent first,
	// up to limit (0 means no limit).
	GetAnalyticsByUser(ctx context.Context, userID string, limit int) ([]*core.AnalyticsEvent, error)

	// GetAnalyticsByDateRange retrieves events where start <= Timestamp < end,
	// ordered by timestamp ascending.
	GetAnalyticsByDateRange(ctx context.Context, start, end time.Time) ([]*core.AnalyticsEvent, error)
}

// Backend is the full document-store contract. The embedded-database and
// JSON-file implementations satisfy it interchangeably.
type Backend interface {
	KnowledgeRepository
	TrainingRepository
	AnalyticsRepository

	// Counts reports how many records of each kind are stored.
	Counts(ctx context.Context) (Counts, error)

	// ClearAll removes every record of every kind.
	ClearAll(ctx context.Context) error

	// Close closes the backend and releases resources.
	Close() error
}
