// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Completer,
// ai.VisionService, ai.Transcriber, and ai.Provider for use in unit tests.
// The mocks allow tests to run without external AI service dependencies and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	vector, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	provider.GetMockCompleter().CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
//	    return "", errors.New("service unavailable")
//	}
//
//	// Check call counts
//	count := provider.GetMockEmbedder().CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: returns deterministic vectors based on text hash
//   - MockCompleter: returns a fixed response string
//   - MockVision: returns fixed description/OCR strings
//   - MockTranscriber: returns a fixed transcript
package mock
