package mock

import (
	"context"
)

// MockTranscriber is a test double for ai.Transcriber.
// It allows custom behavior injection via function fields.
type MockTranscriber struct {
	// TranscribeFunc is called by Transcribe if set.
	TranscribeFunc func(ctx context.Context, filename string, media []byte) (string, error)

	callCount int
}

// NewMockTranscriber creates a mock transcriber with a default fixed transcript.
// Note: Returns concrete type to allow test assertions.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe returns a fixed transcript or delegates to TranscribeFunc.
func (m *MockTranscriber) Transcribe(ctx context.Context, filename string, media []byte) (string, error) {
	m.callCount++

	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, filename, media)
	}
	return "transcript of " + filename, nil
}

// CallCount returns the number of times Transcribe was called.
func (m *MockTranscriber) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTranscriber) Reset() {
	m.callCount = 0
	m.TranscribeFunc = nil
}
