package training

import "errors"

var (
	// ErrCompleterRequired is returned when no completion service is provided.
	ErrCompleterRequired = errors.New("completion service required")

	// ErrEmptyProduct is returned when Generate is called with no product
	// name and no knowledge text to work from.
	ErrEmptyProduct = errors.New("product name or knowledge text required")
)
