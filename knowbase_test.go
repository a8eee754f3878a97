package knowbase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellsense/knowbase/ai/mock"
	"github.com/sellsense/knowbase/extract"
	"github.com/sellsense/knowbase/training"
	"github.com/sellsense/knowbase/vectorindex"
)

func openTestBase(t *testing.T) *KnowledgeBase {
	t.Helper()
	kb, err := Open(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kb.Close() })
	return kb
}

func TestOpen_WiresThePipeline(t *testing.T) {
	kb := openTestBase(t)
	ctx := context.Background()

	results, err := kb.Store().Ingest(ctx, "prod-7", []extract.File{
		{Name: "specs.txt", Data: []byte("The Model X has 300 horsepower.")},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	stats, err := kb.Store().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Counts.Documents)
	assert.Equal(t, vectorindex.ModeMemory, stats.IndexMode)
}

func TestOpen_PlanIsRecordedThroughTheStore(t *testing.T) {
	kb := openTestBase(t)
	ctx := context.Background()

	provider := kb.Provider().(*mock.MockProvider)
	provider.GetMockCompleter().FixedResponse = `{
		"goals": ["Learn the product line"],
		"milestones": ["Week 1: quiz"],
		"focusAreas": ["Discovery"],
		"summary": "Ramp plan."
	}`

	plan, err := kb.Synthesizer().GeneratePersonalizedPlan(ctx, "rep-1", nil, training.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Learn the product line"}, plan.Goals)

	// The plan lands in analytics via the store's async recorder.
	assert.Eventually(t, func() bool {
		events, err := kb.Store().AnalyticsByUser(ctx, "rep-1", 0)
		return err == nil && len(events) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOpen_FallsBackToJSONFileStorage(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// A regular file where the database directory belongs makes the
	// embedded store unopenable.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db"), []byte("not a directory"), 0o644))

	kb, err := Open(dir, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err, "a broken primary store degrades, it does not fail Open")
	defer kb.Close()

	results, err := kb.Store().Ingest(ctx, "prod-7", []extract.File{
		{Name: "specs.txt", Data: []byte("The Model X has 300 horsepower.")},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	docs, err := kb.Store().GetKnowledge(ctx, "prod-7")
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	// The documents land in the JSON-file store, not the embedded one.
	data, err := os.ReadFile(filepath.Join(dir, "fallback", "knowledge.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "specs.txt")
}

func TestOpen_ReopensExistingData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := Open(dir, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	_, err = first.Store().Ingest(ctx, "prod-7", []extract.File{
		{Name: "specs.txt", Data: []byte("Persistent knowledge.")},
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dir, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer second.Close()

	docs, err := second.Store().GetKnowledge(ctx, "prod-7")
	require.NoError(t, err)
	assert.Len(t, docs, 1, "documents survive a restart")
}
