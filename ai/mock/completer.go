package mock

import (
	"context"
	"sync/atomic"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
// Safe for concurrent callers, which generation tests rely on.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns FixedResponse.
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// FixedResponse is returned by the default behavior.
	FixedResponse string

	callCount atomic.Int64
}

// NewMockCompleter creates a mock completer that returns response by default.
// Note: Returns concrete type to allow test assertions.
func NewMockCompleter(response string) *MockCompleter {
	return &MockCompleter{FixedResponse: response}
}

// Complete returns the configured response or delegates to CompleteFunc.
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.callCount.Add(1)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}
	return m.FixedResponse, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockCompleter) Reset() {
	m.callCount.Store(0)
	m.CompleteFunc = nil
}
