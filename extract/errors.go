package extract

import "errors"

var (
	// ErrUnsupportedType indicates a file with a format outside the closed
	// dispatch set. Fatal for that file, reported per file.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrEmptyFile indicates a file with no content.
	ErrEmptyFile = errors.New("file is empty")

	// ErrDecodeFailed indicates corrupt or unreadable file content.
	// Fatal for that file, reported per file.
	ErrDecodeFailed = errors.New("failed to decode file")

	// ErrCompleterRequired is returned when a completer is not provided.
	ErrCompleterRequired = errors.New("completer required")

	// ErrVisionRequired is returned when a vision service is not provided.
	ErrVisionRequired = errors.New("vision service required")

	// ErrTranscriberRequired is returned when a transcriber is not provided.
	ErrTranscriberRequired = errors.New("transcriber required")
)
