// Package extract converts heterogeneous product documents into searchable text.
//
// The Extractor dispatches on a closed set of formats: PDF, Word, spreadsheet,
// image, audio/video, and plain text. Format decoding is local; images and
// media go through the external vision and transcription services with
// degraded fallbacks (OCR-only, fixed placeholder) so ingestion never aborts
// because enrichment failed. ExtractStructured pulls best-effort structured
// product fields out of the text, and ChunkText splits text into bounded,
// sentence-aligned chunks for embedding.
package extract
