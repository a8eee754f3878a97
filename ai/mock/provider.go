package mock

import (
	"github.com/sellsense/knowbase/ai"
)

// MockProvider is a test double for ai.Provider aggregating the other mocks.
type MockProvider struct {
	embedder    *MockEmbedder
	completer   *MockCompleter
	vision      *MockVision
	transcriber *MockTranscriber
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider wired with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:    NewMockEmbedder(),
		completer:   NewMockCompleter("{}"),
		vision:      NewMockVision(),
		transcriber: NewMockTranscriber(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Completer returns the mock completion service.
func (p *MockProvider) Completer() ai.Completer {
	return p.completer
}

// Vision returns the mock vision service.
func (p *MockProvider) Vision() ai.VisionService {
	return p.vision
}

// Transcriber returns the mock transcription service.
func (p *MockProvider) Transcriber() ai.Transcriber {
	return p.transcriber
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete mock for behavior injection and assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockCompleter returns the concrete mock for behavior injection and assertions.
func (p *MockProvider) GetMockCompleter() *MockCompleter {
	return p.completer
}

// GetMockVision returns the concrete mock for behavior injection and assertions.
func (p *MockProvider) GetMockVision() *MockVision {
	return p.vision
}

// GetMockTranscriber returns the concrete mock for behavior injection and assertions.
func (p *MockProvider) GetMockTranscriber() *MockTranscriber {
	return p.transcriber
}
