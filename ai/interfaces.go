package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer produces a chat completion for a system+user prompt pair.
// Callers that expect structured output request JSON mode and parse the
// returned string themselves. Implementations must be thread-safe.
type Completer interface {
	// Complete sends the prompts to the language-understanding service and
	// returns the raw response text. Returns an error on service failure or
	// when the service returns no choices.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// VisionService understands image content.
// Implementations must be thread-safe for concurrent use.
type VisionService interface {
	// Describe returns a natural-language description of the image.
	Describe(ctx context.Context, mimeType string, image []byte) (string, error)

	// OCR returns text visible in the image, without interpretation.
	OCR(ctx context.Context, mimeType string, image []byte) (string, error)
}

// Transcriber converts speech in audio or video files to text.
type Transcriber interface {
	// Transcribe returns the transcript of the media file.
	// filename is used by the service to infer the container format.
	Transcribe(ctx context.Context, filename string, media []byte) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages service instances, ensuring they
// share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Completer returns the chat completion service.
	Completer() Completer

	// Vision returns the image understanding service.
	Vision() VisionService

	// Transcriber returns the speech-to-text service.
	Transcriber() Transcriber

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
