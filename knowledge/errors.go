package knowledge

import "errors"

var (
	// ErrBackendRequired is returned when no storage backend is provided.
	ErrBackendRequired = errors.New("storage backend required")

	// ErrIndexRequired is returned when no vector index is provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrExtractorRequired is returned when no extractor is provided.
	ErrExtractorRequired = errors.New("extractor required")
)
