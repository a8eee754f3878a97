package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sellsense/knowbase/ai"
)

// Transcriber implements ai.Transcriber against the OpenAI-compatible
// /audio/transcriptions endpoint. langchaingo does not expose speech-to-text,
// so the request is issued directly.
type Transcriber struct {
	host   string
	token  string
	model  string
	client *http.Client
	logger *slog.Logger
}

// newTranscriber is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTranscriber(config *ai.Config) *Transcriber {
	config.Normalize()
	return &Transcriber{
		host:   config.Host,
		token:  config.Token,
		model:  config.TranscriptionModel,
		client: &http.Client{Timeout: config.RequestTimeout},
		logger: slog.Default().With("component", "openai-transcriber"),
	}
}

// NewTranscriber creates a new transcriber using the provided configuration.
//
// Returns ai.Transcriber interface to enforce abstraction.
func NewTranscriber(config *ai.Config) ai.Transcriber {
	return newTranscriber(config)
}

// Transcribe sends the media file to the transcription endpoint and returns
// the recognized text.
func (t *Transcriber) Transcribe(ctx context.Context, filename string, media []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build transcription request failed: %w", err)
	}
	if _, err := part.Write(media); err != nil {
		return "", fmt.Errorf("build transcription request failed: %w", err)
	}
	if err := writer.WriteField("model", t.model); err != nil {
		return "", fmt.Errorf("build transcription request failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build transcription request failed: %w", err)
	}

	url := strings.TrimRight(t.host, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("build transcription request failed: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.token)

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error("transcription request failed", "file", filename, "err", err)
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcription response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("transcription response status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse transcription json failed: %w", err)
	}
	return strings.TrimSpace(parsed.Text), nil
}
