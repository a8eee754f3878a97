package extract

import (
	"context"
	"strings"
)

// extractImage reads an image through the vision service: OCR text plus a
// generated description, concatenated. A failed description degrades to
// OCR-only output; both failing degrades to empty text. Never errors, so
// ingestion is not aborted by enrichment failures.
func (e *Extractor) extractImage(ctx context.Context, name, mimeType string, data []byte) string {
	ocrText, ocrErr := e.vision.OCR(ctx, mimeType, data)
	description, descErr := e.vision.Describe(ctx, mimeType, data)

	if ocrErr != nil && descErr != nil {
		e.logger.Warn("image understanding unavailable", "file", name, "ocrErr", ocrErr, "descErr", descErr)
		return ""
	}
	if descErr != nil {
		e.logger.Warn("image description failed, using OCR only", "file", name, "err", descErr)
		return strings.TrimSpace(ocrText)
	}
	if ocrErr != nil || strings.TrimSpace(ocrText) == "" {
		return strings.TrimSpace(description)
	}

	return strings.TrimSpace(ocrText) + "\n\n" + strings.TrimSpace(description)
}
