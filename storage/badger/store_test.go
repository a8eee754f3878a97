package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellsense/knowbase/core"
	"github.com/sellsense/knowbase/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testDocument(filename, entityID string) *core.KnowledgeDocument {
	return &core.KnowledgeDocument{
		Filename:    filename,
		EntityID:    entityID,
		ContentType: core.ContentTypeText,
		RawText:     "Model X has 300 horsepower.",
		Structured:  core.EmptyStructuredData(),
		ChunkCount:  1,
	}
}

func TestKnowledge_AddAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docs, err := store.AddKnowledgeDocuments(ctx, testDocument("specs.txt", "prod-7"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.NotZero(t, docs[0].Id, "content-based ID is assigned")
	assert.False(t, docs[0].ProcessedAt.IsZero())

	got, err := store.GetKnowledgeDocument(ctx, docs[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "specs.txt", got.Filename)
	assert.Equal(t, "prod-7", got.EntityID)

	byName, err := store.GetKnowledgeByFilename(ctx, "specs.txt")
	require.NoError(t, err)
	assert.Equal(t, docs[0].Id, byName.Id)

	_, err = store.GetKnowledgeByFilename(ctx, "missing.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestKnowledge_ReingestReplacesDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddKnowledgeDocuments(ctx, testDocument("specs.txt", "prod-7"))
	require.NoError(t, err)

	updated := testDocument("specs.txt", "prod-8")
	updated.RawText = "Updated copy."
	_, err = store.AddKnowledgeDocuments(ctx, updated)
	require.NoError(t, err)

	all, err := store.ListKnowledgeDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "same filename replaces the earlier document")
	assert.Equal(t, "Updated copy.", all[0].RawText)

	// Entity index moved along with the document.
	old, err := store.GetKnowledgeByEntity(ctx, "prod-7")
	require.NoError(t, err)
	assert.Empty(t, old)

	current, err := store.GetKnowledgeByEntity(ctx, "prod-8")
	require.NoError(t, err)
	assert.Len(t, current, 1)
}

func TestKnowledge_EntityLookupAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddKnowledgeDocuments(ctx,
		testDocument("a.txt", "prod-7"),
		testDocument("b.txt", "prod-7"),
		testDocument("c.txt", "prod-8"),
	)
	require.NoError(t, err)

	docs, err := store.GetKnowledgeByEntity(ctx, "prod-7")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	deleted, err := store.DeleteKnowledgeByEntity(ctx, "prod-7")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := store.ListKnowledgeDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "c.txt", remaining[0].Filename)
}

func TestTraining_SetGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	set := &core.TrainingMaterialSet{
		Quizzes: []core.QuizItem{{Question: "What is the towing capacity?"}},
	}
	require.NoError(t, store.SetTrainingMaterials(ctx, "prod-7", set))

	got, err := store.GetTrainingMaterials(ctx, "prod-7")
	require.NoError(t, err)
	assert.Equal(t, "prod-7", got.EntityID)
	assert.False(t, got.GeneratedAt.IsZero())
	require.Len(t, got.Quizzes, 1)

	// Replace, not merge.
	require.NoError(t, store.SetTrainingMaterials(ctx, "prod-7", &core.TrainingMaterialSet{}))
	got, err = store.GetTrainingMaterials(ctx, "prod-7")
	require.NoError(t, err)
	assert.Empty(t, got.Quizzes)

	require.NoError(t, store.DeleteTrainingMaterials(ctx, "prod-7"))
	_, err = store.GetTrainingMaterials(ctx, "prod-7")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAnalytics_UserQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		err := store.AppendAnalyticsEvent(ctx, &core.AnalyticsEvent{
			UserID:    "rep-1",
			EventType: core.EventChatInteraction,
			Message:   "question",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	err := store.AppendAnalyticsEvent(ctx, &core.AnalyticsEvent{
		UserID:    "rep-2",
		EventType: core.EventTrainingSession,
		Timestamp: base,
	})
	require.NoError(t, err)

	events, err := store.GetAnalyticsByUser(ctx, "rep-1", 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.True(t, events[0].Timestamp.After(events[2].Timestamp), "most recent first")

	limited, err := store.GetAnalyticsByUser(ctx, "rep-1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestAnalytics_DateRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for day := 0; day < 5; day++ {
		err := store.AppendAnalyticsEvent(ctx, &core.AnalyticsEvent{
			UserID:    "rep-1",
			EventType: core.EventChatInteraction,
			Timestamp: base.AddDate(0, 0, day),
		})
		require.NoError(t, err)
	}

	events, err := store.GetAnalyticsByDateRange(ctx, base.AddDate(0, 0, 1), base.AddDate(0, 0, 4))
	require.NoError(t, err)
	require.Len(t, events, 3, "start inclusive, end exclusive")
	assert.True(t, events[0].Timestamp.Before(events[2].Timestamp), "ascending order")
}

func TestCountsAndClearAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddKnowledgeDocuments(ctx, testDocument("a.txt", "prod-7"))
	require.NoError(t, err)
	require.NoError(t, store.SetTrainingMaterials(ctx, "prod-7", &core.TrainingMaterialSet{}))
	require.NoError(t, store.AppendAnalyticsEvent(ctx, &core.AnalyticsEvent{
		UserID: "rep-1", EventType: core.EventChatInteraction,
	}))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.Counts{Documents: 1, TrainingSets: 1, AnalyticsEvents: 1}, counts)

	require.NoError(t, store.ClearAll(ctx))

	counts, err = store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.Counts{}, counts)
}
