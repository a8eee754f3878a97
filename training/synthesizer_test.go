package training

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellsense/knowbase/ai/mock"
)

// categoryResponses answers each category's prompt with one valid item.
func categoryResponses() func(ctx context.Context, system, user string) (string, error) {
	return func(_ context.Context, _, user string) (string, error) {
		switch {
		case strings.Contains(user, "quiz questions"):
			return `{"items":[{"question":"How much can the Model X tow?","options":["1000 lbs","3000 lbs","5000 lbs","8000 lbs"],"correctAnswerIndex":2,"explanation":"Rated at 5000 lbs.","difficulty":"easy","category":"specifications"}]}`, nil
		case strings.Contains(user, "practice scenarios"):
			return `{"items":[{"title":"Fleet buyer","customerProfile":"Fleet manager","situation":"Evaluating trucks","objective":"Book a demo","suggestedApproach":"Lead with towing capacity"}]}`, nil
		case strings.Contains(user, "customer objections"):
			return `{"items":[{"objection":"Too expensive","response":"Compare total cost","tip":"Widen the frame"}]}`, nil
		case strings.Contains(user, "competitive positioning"):
			return `{"items":[{"competitor":"Brand Y","advantage":"Higher towing capacity","talkTrack":"The Model X tows 2000 lbs more."}]}`, nil
		case strings.Contains(user, "talking points"):
			return `{"items":[{"headline":"Class-leading towing","detail":"5000 lbs rated capacity."}]}`, nil
		case strings.Contains(user, "role-play scripts"):
			return `{"items":[{"title":"Tow test","customerRole":"Skeptic","salesGoal":"Prove capacity","lines":[{"speaker":"customer","text":"Can it really tow my boat?"},{"speaker":"rep","text":"It is rated at 5000 pounds."}]}]}`, nil
		}
		return "", errors.New("unexpected prompt")
	}
}

func newTestSynthesizer(t *testing.T, completer *mock.MockCompleter, opts ...Option) *Synthesizer {
	t.Helper()
	s, err := NewSynthesizer(completer, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s
}

func TestGenerate_AllCategories(t *testing.T) {
	completer := mock.NewMockCompleter("")
	completer.CompleteFunc = categoryResponses()
	s := newTestSynthesizer(t, completer)

	result, err := s.Generate(context.Background(), ProductAttributes{Name: "Model X"}, "The Model X tows 5000 pounds.")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.FallbackCategories)
	assert.False(t, result.GeneratedAt.IsZero())

	m := result.Materials
	require.NotNil(t, m)
	assert.Len(t, m.Quizzes, 1)
	assert.Len(t, m.Scenarios, 1)
	assert.Len(t, m.ObjectionHandlers, 1)
	assert.Len(t, m.Comparisons, 1)
	assert.Len(t, m.TalkingPoints, 1)
	assert.Len(t, m.RolePlayScripts, 1)
	assert.Equal(t, 2, m.Quizzes[0].CorrectAnswerIndex)
}

func TestGenerate_ServiceDownDegradesToFallbacks(t *testing.T) {
	completer := mock.NewMockCompleter("")
	completer.CompleteFunc = func(context.Context, string, string) (string, error) {
		return "", errors.New("service unavailable")
	}
	s := newTestSynthesizer(t, completer)

	result, err := s.Generate(context.Background(), ProductAttributes{Name: "Model X"}, "")
	require.NoError(t, err, "a full service outage must not fail generation")

	assert.True(t, result.Success, "fallback materials still count as a produced set")
	assert.Len(t, result.FallbackCategories, 6)

	m := result.Materials
	assert.NotEmpty(t, m.Quizzes)
	assert.NotEmpty(t, m.Scenarios)
	assert.NotEmpty(t, m.ObjectionHandlers)
	assert.NotEmpty(t, m.Comparisons)
	assert.NotEmpty(t, m.TalkingPoints)
	assert.NotEmpty(t, m.RolePlayScripts)

	// Fallback items mention the product by name where it reads naturally.
	assert.Contains(t, m.Scenarios[0].Situation, "Model X")
}

func TestGenerate_PartialDegradation(t *testing.T) {
	healthy := categoryResponses()
	completer := mock.NewMockCompleter("")
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		if strings.Contains(user, "quiz questions") {
			return "not json at all", nil
		}
		return healthy(ctx, system, user)
	}
	s := newTestSynthesizer(t, completer)

	result, err := s.Generate(context.Background(), ProductAttributes{Name: "Model X"}, "")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"quizzes"}, result.FallbackCategories)
	assert.NotEmpty(t, result.Materials.Quizzes, "failed category still carries fallback items")
	assert.Equal(t, "Fleet buyer", result.Materials.Scenarios[0].Title, "healthy categories keep generated items")
}

func TestGenerate_EmptyItemListUsesFallback(t *testing.T) {
	completer := mock.NewMockCompleter("")
	completer.FixedResponse = `{"items":[]}`
	s := newTestSynthesizer(t, completer)

	result, err := s.Generate(context.Background(), ProductAttributes{Name: "Model X"}, "")
	require.NoError(t, err)
	assert.Len(t, result.FallbackCategories, 6)
}

func TestGenerate_RequiresInput(t *testing.T) {
	s := newTestSynthesizer(t, mock.NewMockCompleter(""))

	_, err := s.Generate(context.Background(), ProductAttributes{}, "   ")
	assert.ErrorIs(t, err, ErrEmptyProduct)
}

func TestGenerate_KnowledgeWindowBound(t *testing.T) {
	var longest int
	completer := mock.NewMockCompleter("")
	completer.CompleteFunc = func(_ context.Context, _, user string) (string, error) {
		if len(user) > longest {
			longest = len(user)
		}
		return "", errors.New("measuring only")
	}
	s := newTestSynthesizer(t, completer, WithKnowledgeWindow(100), WithPoolSize(1))

	long := strings.Repeat("a", 5000)
	_, err := s.Generate(context.Background(), ProductAttributes{Name: "Model X"}, long)
	require.NoError(t, err)
	assert.Less(t, longest, 1200, "knowledge text is cut to the window")
}
