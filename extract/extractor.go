// Copyright 2025 Sellsense Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/sellsense/knowbase/ai"
	"github.com/sellsense/knowbase/core"
)

// File is one uploaded file handed to the extractor.
// DeclaredType is the caller-declared format (an extension like "pdf" or
// "docx"); when empty, the extension of Name is used.
type File struct {
	Name         string
	Data         []byte
	DeclaredType string
}

// Extraction is the result of converting one file into searchable knowledge.
type Extraction struct {
	RawText     string
	Structured  core.StructuredData
	ContentType core.ContentType
	MimeType    string
}

// Extractor converts files into raw text plus best-effort structured fields.
// Format-decode failures are fatal per file; enrichment-service failures only
// degrade output quality and never abort an extraction.
type Extractor struct {
	completer        ai.Completer
	vision           ai.VisionService
	transcriber      ai.Transcriber
	structuredWindow int
	logger           *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithStructuredWindow bounds how many leading characters of raw text are sent
// to the understanding service for structured-data extraction.
// Default is 8000. The cut is a plain prefix and may land mid-sentence.
func WithStructuredWindow(chars int) Option {
	return func(e *Extractor) error {
		if chars < 1 {
			return fmt.Errorf("structured window must be positive, got %d", chars)
		}
		e.structuredWindow = chars
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates an extractor backed by the provider's understanding,
// vision, and transcription services.
func NewExtractor(provider ai.Provider, opts ...Option) (*Extractor, error) {
	if provider == nil {
		return nil, ErrCompleterRequired
	}
	return newExtractor(provider.Completer(), provider.Vision(), provider.Transcriber(), opts...)
}

func newExtractor(completer ai.Completer, vision ai.VisionService, transcriber ai.Transcriber, opts ...Option) (*Extractor, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if vision == nil {
		return nil, ErrVisionRequired
	}
	if transcriber == nil {
		return nil, ErrTranscriberRequired
	}

	e := &Extractor{
		completer:        completer,
		vision:           vision,
		transcriber:      transcriber,
		structuredWindow: 8000,
		logger:           slog.Default().With("component", "extractor"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Extract converts a single file into raw text and structured fields.
// The returned error is a format error (unsupported or corrupt content);
// enrichment failures are absorbed and logged.
func (e *Extractor) Extract(ctx context.Context, file File) (*Extraction, error) {
	if file.Name == "" {
		return nil, core.ErrEmptyFilename
	}
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, file.Name)
	}

	ext := declaredExtension(file)
	contentType, ok := formatFor(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	var (
		rawText string
		err     error
	)
	switch contentType {
	case core.ContentTypePDF:
		rawText, err = extractPDF(file.Data)
	case core.ContentTypeWord:
		rawText, err = extractDocx(file.Data)
	case core.ContentTypeSpreadsheet:
		rawText, err = extractSpreadsheet(file.Name, ext, file.Data)
	case core.ContentTypeImage:
		rawText = e.extractImage(ctx, file.Name, mimeFor(ext), file.Data)
	case core.ContentTypeMedia:
		rawText = e.extractMedia(ctx, file.Name, file.Data)
	case core.ContentTypeText:
		rawText = string(file.Data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, file.Name, err)
	}

	structured := e.ExtractStructured(ctx, rawText, contentType)

	return &Extraction{
		RawText:     rawText,
		Structured:  structured,
		ContentType: contentType,
		MimeType:    mimeFor(ext),
	}, nil
}

// declaredExtension resolves the effective format tag for a file.
func declaredExtension(file File) string {
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(file.DeclaredType), "."))
	if ext == "" {
		ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Name), "."))
	}
	return ext
}

// formatFor maps a file extension to its content type. The format set is
// fixed and small, so dispatch is a closed mapping rather than a registry.
// Only the XML-era Office formats are supported; the legacy binary .doc and
// .xls containers are not.
func formatFor(ext string) (core.ContentType, bool) {
	switch ext {
	case "pdf":
		return core.ContentTypePDF, true
	case "docx":
		return core.ContentTypeWord, true
	case "xlsx", "xlsm", "csv":
		return core.ContentTypeSpreadsheet, true
	case "png", "jpg", "jpeg", "gif", "webp":
		return core.ContentTypeImage, true
	case "mp3", "wav", "m4a", "ogg", "mp4", "mov", "avi", "webm":
		return core.ContentTypeMedia, true
	case "txt", "md", "text":
		return core.ContentTypeText, true
	}
	return "", false
}

func mimeFor(ext string) string {
	switch ext {
	case "pdf":
		return "application/pdf"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "xlsx", "xlsm":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		return "text/csv"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "m4a":
		return "audio/mp4"
	case "ogg":
		return "audio/ogg"
	case "mp4":
		return "video/mp4"
	case "mov":
		return "video/quicktime"
	case "avi":
		return "video/x-msvideo"
	case "webm":
		return "video/webm"
	case "txt", "md", "text":
		return "text/plain"
	}
	return "application/octet-stream"
}
