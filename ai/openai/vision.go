package openai

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sellsense/knowbase/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const describePrompt = "Describe this product image for a sales knowledge base. " +
	"Cover what the product is, visible features, and anything a sales rep should know. " +
	"Be concise and factual."

const ocrPrompt = "Read all text visible in this image and return it verbatim, " +
	"preserving line breaks. Return only the text, no commentary. " +
	"If there is no readable text, return an empty response."

// Vision implements ai.VisionService using multimodal chat completions.
type Vision struct {
	client llms.Model
	logger *slog.Logger
}

// newVision is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newVision(config *ai.Config) (*Vision, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.CompletionModel),
		openai.WithHTTPClient(&http.Client{Timeout: config.RequestTimeout}),
	)
	if err != nil {
		return nil, err
	}

	return &Vision{
		client: client,
		logger: slog.Default().With("component", "openai-vision"),
	}, nil
}

// NewVision creates a new vision service using the provided configuration.
//
// Returns ai.VisionService interface to enforce abstraction.
func NewVision(config *ai.Config) (ai.VisionService, error) {
	return newVision(config)
}

// Describe returns a natural-language description of the image.
func (v *Vision) Describe(ctx context.Context, mimeType string, image []byte) (string, error) {
	return v.ask(ctx, describePrompt, mimeType, image)
}

// OCR returns text visible in the image, without interpretation.
func (v *Vision) OCR(ctx context.Context, mimeType string, image []byte) (string, error) {
	return v.ask(ctx, ocrPrompt, mimeType, image)
}

func (v *Vision) ask(ctx context.Context, prompt, mimeType string, image []byte) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
				llms.BinaryPart(mimeType, image),
			},
		},
	}

	response, err := v.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		v.logger.Error("vision call failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		v.logger.Debug("no choices returned from vision model")
		return "", ErrNoChoices
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
