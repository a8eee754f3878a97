package extract

import (
	"context"
	"strings"
)

// TranscriptionUnavailable is stored in place of a transcript when the
// speech-to-text service fails. Ingestion continues with this placeholder.
const TranscriptionUnavailable = "[transcription unavailable]"

// extractMedia transcribes an audio or video file. Never errors; a failed or
// empty transcription yields the fixed placeholder.
func (e *Extractor) extractMedia(ctx context.Context, name string, data []byte) string {
	transcript, err := e.transcriber.Transcribe(ctx, name, data)
	if err != nil {
		e.logger.Warn("transcription failed", "file", name, "err", err)
		return TranscriptionUnavailable
	}
	if strings.TrimSpace(transcript) == "" {
		return TranscriptionUnavailable
	}
	return transcript
}
