package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellsense/knowbase/core"
	"github.com/sellsense/knowbase/storage"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func TestKnowledge_RoundTrip(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	docs, err := store.AddKnowledgeDocuments(ctx, &core.KnowledgeDocument{
		Filename:    "specs.txt",
		EntityID:    "prod-7",
		ContentType: core.ContentTypeText,
		RawText:     "Model X has 300 horsepower.",
		Structured:  core.EmptyStructuredData(),
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	got, err := store.GetKnowledgeByFilename(ctx, "specs.txt")
	require.NoError(t, err)
	assert.Equal(t, "Model X has 300 horsepower.", got.RawText)

	byEntity, err := store.GetKnowledgeByEntity(ctx, "prod-7")
	require.NoError(t, err)
	assert.Len(t, byEntity, 1)

	_, err = store.GetKnowledgeByFilename(ctx, "missing.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// The file on disk is a plain JSON array.
	data, err := os.ReadFile(filepath.Join(dir, "knowledge.json"))
	require.NoError(t, err)
	assert.Equal(t, byte('['), data[0])
}

func TestKnowledge_AccumulatesAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := Open(dir)
	require.NoError(t, err)
	_, err = first.AddKnowledgeDocuments(ctx, &core.KnowledgeDocument{Filename: "a.txt"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dir)
	require.NoError(t, err)
	defer second.Close()
	_, err = second.AddKnowledgeDocuments(ctx, &core.KnowledgeDocument{Filename: "b.txt"})
	require.NoError(t, err)

	all, err := second.ListKnowledgeDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "reopening must not truncate existing data")
}

func TestKnowledge_DeleteByEntity(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddKnowledgeDocuments(ctx,
		&core.KnowledgeDocument{Filename: "a.txt", EntityID: "prod-7"},
		&core.KnowledgeDocument{Filename: "b.txt", EntityID: "prod-7"},
		&core.KnowledgeDocument{Filename: "c.txt", EntityID: "prod-8"},
	)
	require.NoError(t, err)

	deleted, err := store.DeleteKnowledgeByEntity(ctx, "prod-7")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := store.ListKnowledgeDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestTraining_ReplaceSemantics(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTrainingMaterials(ctx, "prod-7", &core.TrainingMaterialSet{
		Quizzes: []core.QuizItem{{Question: "Old question?"}},
	}))
	require.NoError(t, store.SetTrainingMaterials(ctx, "prod-7", &core.TrainingMaterialSet{
		Quizzes: []core.QuizItem{{Question: "New question?"}},
	}))

	got, err := store.GetTrainingMaterials(ctx, "prod-7")
	require.NoError(t, err)
	require.Len(t, got.Quizzes, 1)
	assert.Equal(t, "New question?", got.Quizzes[0].Question)
}

func TestAnalytics_AppendAndQuery(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendAnalyticsEvent(ctx, &core.AnalyticsEvent{
			UserID:    "rep-1",
			EventType: core.EventChatInteraction,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	byUser, err := store.GetAnalyticsByUser(ctx, "rep-1", 2)
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, base.Add(2*time.Hour), byUser[0].Timestamp, "most recent first")

	inRange, err := store.GetAnalyticsByDateRange(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, inRange, 2, "end bound is exclusive")
}

func TestClearAllAndCounts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddKnowledgeDocuments(ctx, &core.KnowledgeDocument{Filename: "a.txt"})
	require.NoError(t, err)
	require.NoError(t, store.SetTrainingMaterials(ctx, "prod-7", &core.TrainingMaterialSet{}))
	require.NoError(t, store.AppendAnalyticsEvent(ctx, &core.AnalyticsEvent{UserID: "rep-1", EventType: core.EventChatInteraction}))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.Counts{Documents: 1, TrainingSets: 1, AnalyticsEvents: 1}, counts)

	require.NoError(t, store.ClearAll(ctx))
	counts, err = store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.Counts{}, counts)
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Close())

	_, err := store.ListKnowledgeDocuments(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
